package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSagaCompensatesInReverse(t *testing.T) {
	var order []string
	sg := &saga{}
	for _, name := range []string{"site", "accounts", "purchase"} {
		name := name
		sg.record(name, func(ctx context.Context) error {
			order = append(order, name)
			if name == "accounts" {
				return errors.New("locked")
			}
			return nil
		})
	}
	assert.Equal(t, 3, sg.len())

	err := sg.compensate(context.Background())
	assert.Equal(t, []string{"purchase", "accounts", "site"}, order)
	assert.EqualError(t, err, "undo accounts: locked")
	assert.Equal(t, 0, sg.len())
	assert.NoError(t, sg.compensate(context.Background()))
}
