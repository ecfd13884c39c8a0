package objectstore_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"goldenorders/pkg/objectstore"
	mock_objectstore "goldenorders/pkg/objectstore/mock"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSafeName(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input    string
		expected string
	}{
		{input: "PED-123456_1712345678901.pdf", expected: "PED-123456_1712345678901.pdf"},
		{input: "Aceite Pedido/ção.pdf", expected: "Aceite_Pedido___o.pdf"},
		{input: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, objectstore.SafeName(tc.input))
		})
	}
}

func TestStore_Upload(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc     string
		mocks    func(api *mock_objectstore.MockAPI)
		expected string
		wantErr  bool
	}{
		{
			desc: "puts sanitized key and returns public url",
			mocks: func(api *mock_objectstore.MockAPI) {
				api.EXPECT().PutObject(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
						assert.Equal(t, "order-pdfs", aws.ToString(in.Bucket))
						assert.Equal(t, "PED_1.pdf", aws.ToString(in.Key))
						assert.Equal(t, "application/pdf", aws.ToString(in.ContentType))
						body, err := io.ReadAll(in.Body)
						require.NoError(t, err)
						assert.Equal(t, "%PDF", string(body))
						return &s3.PutObjectOutput{}, nil
					})
			},
			expected: "https://files.example.com/order-pdfs/PED_1.pdf",
		},
		{
			desc: "put failure",
			mocks: func(api *mock_objectstore.MockAPI) {
				api.EXPECT().PutObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("access denied"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			api := mock_objectstore.NewMockAPI(ctrl)
			tc.mocks(api)

			store := objectstore.New(api, "order-pdfs", "https://files.example.com/")

			got, err := store.Upload(context.Background(), "PED 1.pdf", "application/pdf", []byte("%PDF"))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	api := mock_objectstore.NewMockAPI(ctrl)
	api.EXPECT().DeleteObject(gomock.Any(), &s3.DeleteObjectInput{
		Bucket: aws.String("order-pdfs"),
		Key:    aws.String("PED-1.pdf"),
	}).Return(&s3.DeleteObjectOutput{}, nil)

	store := objectstore.New(api, "order-pdfs", "https://files.example.com")
	require.NoError(t, store.Delete(context.Background(), "PED-1.pdf"))
}
