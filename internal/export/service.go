package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/TalhaZaheer1/SmartBridge-Backend/internal/orders"
	pkgerrors "github.com/TalhaZaheer1/SmartBridge-Backend/pkg/errors"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName  = "Orders"
	dateLayout = "2006-01-02 15:04"
)

var columnHeaders = []string{
	"Order ID", "Product", "Category", "Buyer", "Vendor",
	"Price", "Fee", "Total", "Status", "Created At",
}

type orderLister interface {
	AllForExport(ctx context.Context) ([]orders.OrderView, error)
}

// Service renders the full order book into downloadable reports.
type Service interface {
	OrdersXLSX(ctx context.Context, w io.Writer) error
	OrdersPDF(ctx context.Context, w io.Writer) error
}

type service struct {
	orders orderLister
}

func NewService(orders orderLister) (Service, error) {
	if orders == nil {
		return nil, fmt.Errorf("export: order lister is required")
	}
	return &service{orders: orders}, nil
}

func (s *service) OrdersXLSX(ctx context.Context, w io.Writer) error {
	list, err := s.orders.AllForExport(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sheet")
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	for col, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve header cell")
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write header cell")
		}
	}

	for i, order := range list {
		values := []any{
			order.ID.String(),
			order.Product.Title,
			order.Product.Category,
			order.Buyer.Name,
			order.Vendor.Name,
			order.Price.StringFixed(2),
			order.Fee.StringFixed(2),
			order.Total.StringFixed(2),
			string(order.Status),
			order.CreatedAt.Format(dateLayout),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve cell")
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write cell")
			}
		}
	}

	if err := f.Write(w); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "write workbook")
	}
	return nil
}

func (s *service) OrdersPDF(ctx context.Context, w io.Writer) error {
	list, err := s.orders.AllForExport(ctx)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Orders Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Orders Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("Generated %s, %d orders", time.Now().Format(dateLayout), len(list)))
	pdf.Ln(12)

	for _, order := range list {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, fmt.Sprintf("Order %s", order.ID))
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "", 10)
		pdf.Cell(0, 6, fmt.Sprintf("Product: %s (%s)", order.Product.Title, order.Product.Category))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Buyer: %s   Vendor: %s", order.Buyer.Name, order.Vendor.Name))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Price: %s   Fee: %s   Total: %s",
			order.Price.StringFixed(2), order.Fee.StringFixed(2), order.Total.StringFixed(2)))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Status: %s   Placed: %s", order.Status, order.CreatedAt.Format(dateLayout)))
		pdf.Ln(8)
	}

	if err := pdf.Output(w); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render pdf")
	}
	return nil
}
