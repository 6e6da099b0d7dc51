package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/internal/orders"
	"github.com/TalhaZaheer1/SmartBridge-Backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

type stubOrderLister struct {
	views []orders.OrderView
	err   error
}

func (s *stubOrderLister) AllForExport(ctx context.Context) ([]orders.OrderView, error) {
	return s.views, s.err
}

func sampleViews() []orders.OrderView {
	return []orders.OrderView{
		{
			ID: uuid.New(),
			Product: orders.ProductSummary{
				ID: uuid.New(), Title: "Desk Lamp", Category: "home",
				Price: decimal.NewFromInt(40),
			},
			Buyer:     orders.PartySummary{ID: uuid.New(), Name: "Alice"},
			Vendor:    orders.PartySummary{ID: uuid.New(), Name: "Lamp Store"},
			Price:     decimal.NewFromInt(40),
			Fee:       decimal.NewFromInt(2),
			Total:     decimal.NewFromInt(42),
			Status:    enums.OrderStatusPlaced,
			CreatedAt: time.Date(2026, 2, 1, 13, 30, 0, 0, time.UTC),
		},
		{
			ID: uuid.New(),
			Product: orders.ProductSummary{
				ID: uuid.New(), Title: "Kettle", Category: "kitchen",
				Price: decimal.NewFromInt(25),
			},
			Buyer:     orders.PartySummary{ID: uuid.New(), Name: "Bob"},
			Vendor:    orders.PartySummary{ID: uuid.New(), Name: "Kitchen Store"},
			Price:     decimal.NewFromInt(25),
			Fee:       decimal.NewFromFloat(1.25),
			Total:     decimal.NewFromFloat(26.25),
			Status:    enums.OrderStatusDelivered,
			CreatedAt: time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC),
		},
	}
}

func TestOrdersXLSX(t *testing.T) {
	views := sampleViews()
	svc, err := NewService(&stubOrderLister{views: views})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.OrdersXLSX(context.Background(), &buf); err != nil {
		t.Fatalf("orders xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want header plus 2", len(rows))
	}
	if rows[0][0] != "Order ID" || rows[0][9] != "Created At" {
		t.Errorf("unexpected header row %v", rows[0])
	}
	if rows[1][1] != "Desk Lamp" || rows[1][7] != "42.00" {
		t.Errorf("unexpected first data row %v", rows[1])
	}
	if rows[2][8] != "delivered" {
		t.Errorf("status cell = %q, want delivered", rows[2][8])
	}
}

func TestOrdersPDF(t *testing.T) {
	svc, err := NewService(&stubOrderLister{views: sampleViews()})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.OrdersPDF(context.Background(), &buf); err != nil {
		t.Fatalf("orders pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output is not a pdf document")
	}
}

func TestOrdersXLSXEmpty(t *testing.T) {
	svc, err := NewService(&stubOrderLister{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.OrdersXLSX(context.Background(), &buf); err != nil {
		t.Fatalf("orders xlsx: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("rows = %d, want header only", len(rows))
	}
}
