package analytics

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

func decimalInt(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// fetchDirect ejecuta el loader y copia el resultado en dest, igual que una lectura desde caché.
func fetchDirect(ctx context.Context, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	v, err := loader(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
