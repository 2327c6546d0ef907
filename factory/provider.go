package factory

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/syssam/fabrica"
	"github.com/syssam/fabrica/schema"
	"github.com/syssam/fabrica/schema/field"
)

// defaultStringLen bounds generated strings for columns with no declared length.
const defaultStringLen = 36

// A Provider produces one synthetic value satisfying the semantic type
// and constraints of the given column.
type Provider func(c *schema.Column) any

// Registry maps semantic column types to value providers. The default
// registry is exhaustive over the field type set; a lookup miss means
// the registry was replaced or narrowed by the caller and is reported
// as a configuration error.
type Registry struct {
	providers map[field.Type]Provider
}

// NewRegistry returns a registry holding the default provider for every
// semantic type.
func NewRegistry() *Registry {
	return &Registry{providers: map[field.Type]Provider{
		field.TypeString: stringValue,
		field.TypeInt: func(*schema.Column) any {
			return gofakeit.Number(0, 9999)
		},
		field.TypeFloat: func(*schema.Column) any {
			return gofakeit.Float64Range(0, 9999)
		},
		field.TypeBool: func(*schema.Column) any {
			return gofakeit.Bool()
		},
		field.TypeTime: timeValue,
		field.TypeEnum: func(c *schema.Column) any {
			return gofakeit.RandomString(c.Type.Enums)
		},
		field.TypeJSON: func(*schema.Column) any {
			return map[string]any{}
		},
		field.TypeUUID: func(*schema.Column) any {
			return uuid.NewString()
		},
	}}
}

// Register sets the provider for the given semantic type, replacing the
// default one.
func (r *Registry) Register(t field.Type, p Provider) {
	r.providers[t] = p
}

// Provider returns the provider registered for the column's semantic type.
func (r *Registry) Provider(table string, c *schema.Column) (Provider, error) {
	p, ok := r.providers[c.Type.Type]
	if !ok {
		return nil, fabrica.NewProviderError(c.Type.Type, table, c.Name)
	}
	return p, nil
}

// stringValue generates a printable string bounded by the column's
// declared length. Primary keys get identifier-shaped values instead,
// regardless of declared length.
func stringValue(c *schema.Column) any {
	if c.PrimaryKey {
		return uuid.NewString()
	}
	n := c.Type.Size
	if n <= 0 {
		n = defaultStringLen
	}
	return gofakeit.LetterN(uint(n))
}

// timeValue generates a timestamp within the current month.
func timeValue(*schema.Column) any {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return gofakeit.DateRange(start, now)
}
