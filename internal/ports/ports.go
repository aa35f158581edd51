package ports

import (
	"context"
	"io"

	"github.com/brunotome93/white-flywire-exercise/internal/domain"
)

// EmployeeService defines the operations of the remote employee service.
type EmployeeService interface {
	ListActive(ctx context.Context) ([]domain.Employee, error)
	Get(ctx context.Context, id int) (*domain.EmployeeDetail, error)
	// ListByHireDateRange takes both bounds in MM/DD/YYYY form, inclusive.
	ListByHireDateRange(ctx context.Context, start, end string) ([]domain.Employee, error)
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Deactivate(ctx context.Context, id int) error
}

// RosterExporter renders a list of employees as a downloadable document.
type RosterExporter interface {
	// Export writes the document for the given title and rows to w.
	Export(ctx context.Context, title string, employees []domain.Employee, w io.Writer) error

	// ContentType and Extension describe the produced document.
	ContentType() string
	Extension() string
}
