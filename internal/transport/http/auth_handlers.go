package httpt

import (
	"context"
	"net/http"

	"goldenorders/internal/entity"

	"github.com/gin-gonic/gin"
)

// @Summary Cadastro
// @Description Cria a senha de um e-mail corporativo
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body httpt.CredentialsRequest true "E-mail e senha"
// @Success 201 {object} httpt.SuccessResponse "Cadastro realizado"
// @Failure 400 {object} httpt.ErrorResponse "E-mail ou senha inválidos"
// @Failure 409 {object} httpt.ErrorResponse "E-mail já cadastrado"
// @Router /auth/signup [post]
func (h *Handler) signUpHandler(c *gin.Context) {
	const op = "transport.signUpHandler"

	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	if err := h.svc.Auth.SignUp(ctx, req.Email, req.Password); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "cadastro realizado"})
}

// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body httpt.CredentialsRequest true "E-mail e senha"
// @Success 200 {object} service.SignInResult "Token de sessão"
// @Failure 401 {object} httpt.ErrorResponse "Credenciais inválidas"
// @Router /auth/signin [post]
func (h *Handler) signInHandler(c *gin.Context) {
	const op = "transport.signInHandler"

	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	res, err := h.svc.Auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, res)
}

// @Summary Logout
// @Tags Auth
// @Security BearerAuth
// @Success 204 "Sessão encerrada"
// @Failure 401 {object} httpt.ErrorResponse "Autenticação necessária"
// @Router /auth/signout [post]
func (h *Handler) signOutHandler(c *gin.Context) {
	const op = "transport.signOutHandler"

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	if err := h.svc.Auth.SignOut(ctx, caller); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Sessão atual
// @Tags Auth
// @Produce json
// @Success 200 {object} httpt.SessionResponse "Sessão"
// @Router /auth/session [get]
func (h *Handler) sessionHandler(c *gin.Context) {
	caller, ok := callerFrom(c)
	if !ok {
		c.JSON(http.StatusOK, SessionResponse{})
		return
	}

	user := caller.User
	c.JSON(http.StatusOK, SessionResponse{Authenticated: true, User: &user})
}

// @Summary Listar usuários
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} entity.User "Usuários"
// @Failure 403 {object} httpt.ErrorResponse "Acesso restrito"
// @Router /users [get]
func (h *Handler) listUsersHandler(c *gin.Context) {
	const op = "transport.listUsersHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	users, err := h.svc.Users.ListUsers(ctx)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, users)
}

// @Summary Criar usuário
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body entity.User true "Usuário"
// @Success 201 {object} entity.User "Usuário criado"
// @Failure 400 {object} httpt.ErrorResponse "Dados inválidos"
// @Failure 409 {object} httpt.ErrorResponse "E-mail já cadastrado"
// @Router /users [post]
func (h *Handler) createUserHandler(c *gin.Context) {
	const op = "transport.createUserHandler"

	var user entity.User
	if err := c.ShouldBindJSON(&user); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	created, err := h.svc.Users.CreateUser(ctx, &user)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary Atualizar usuário
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param email path string true "E-mail do usuário"
// @Param user body entity.User true "Nome e perfil"
// @Success 200 {object} entity.User "Usuário atualizado"
// @Failure 403 {object} httpt.ErrorResponse "Conta protegida"
// @Failure 404 {object} httpt.ErrorResponse "Usuário não encontrado"
// @Router /users/{email} [put]
func (h *Handler) updateUserHandler(c *gin.Context) {
	const op = "transport.updateUserHandler"

	var user entity.User
	if err := c.ShouldBindJSON(&user); err != nil {
		h.handleBadRequest(c, op, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	updated, err := h.svc.Users.UpdateUser(ctx, c.Param("email"), &user)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// @Summary Excluir usuário
// @Tags Users
// @Security BearerAuth
// @Param email path string true "E-mail do usuário"
// @Success 204 "Usuário excluído"
// @Failure 403 {object} httpt.ErrorResponse "Conta protegida ou própria"
// @Failure 404 {object} httpt.ErrorResponse "Usuário não encontrado"
// @Router /users/{email} [delete]
func (h *Handler) deleteUserHandler(c *gin.Context) {
	const op = "transport.deleteUserHandler"

	caller, _ := callerFrom(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), _writeTimeout)
	defer cancel()

	if err := h.svc.Users.DeleteUser(ctx, caller, c.Param("email")); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.Status(http.StatusNoContent)
}
