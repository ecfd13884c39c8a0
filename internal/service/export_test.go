package service

import "time"

var FormatOrderID = formatOrderID

func (os *OrderService) SetNow(now func() time.Time) { os.now = now }

func (es *ExportService) SetNow(now func() time.Time) { es.now = now }

func (as *AcceptanceService) SetNow(now func() time.Time) { as.now = now }

func (as *AuthService) SetNow(now func() time.Time) { as.now = now }
