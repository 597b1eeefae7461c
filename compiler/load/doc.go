// Package load discovers the model types mapgen generates mappers for.
//
// It loads Go packages with golang.org/x/tools/go/packages and turns every
// exported struct into a Model. A struct becomes a mapping candidate when
// its doc comment carries the table directive:
//
//	//mapgen:table orders
//	//mapgen:query recent created_at > :since
//	type Order struct {
//		ID         int64
//		CustomerID int64  `db:"customer_ref"`
//		Status     Status `mapgen:"handler=StatusHandler"`
//		Note       string `db:"-"`
//	}
//
// Field tags:
//
//	db:"name"                  explicit column name, "-" skips the field
//	mapgen:"-"                 skips the field
//	mapgen:"column=name"       explicit column name
//	mapgen:"handler=X,type=Y"  marshaling overrides
//
// Embedded structs are flattened in place, so shared base structs
// contribute their fields to every model embedding them.
package load
