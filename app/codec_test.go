package app

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type amountDoc struct {
	Amount decimal.Decimal `bson:"amount"`
}

func TestDecimalCodec(t *testing.T) {
	reg := NewBSONRegistry()

	t.Run("Stored As Exact String", func(t *testing.T) {
		data, err := bson.MarshalWithRegistry(reg, amountDoc{Amount: decimal.RequireFromString("1234.000000000000000001")})
		assert.NoError(t, err)

		raw := bson.Raw(data)
		assert.Equal(t, "1234.000000000000000001", raw.Lookup("amount").StringValue())

		var doc amountDoc
		err = bson.UnmarshalWithRegistry(reg, data, &doc)
		assert.NoError(t, err)
		assert.Equal(t, "1234.000000000000000001", doc.Amount.String())
	})

	t.Run("Decodes Numeric Types", func(t *testing.T) {
		dec128, _ := primitive.ParseDecimal128("12.50")
		inputs := []bson.M{
			{"amount": int32(7)},
			{"amount": int64(7)},
			{"amount": 7.0},
			{"amount": dec128},
		}
		expected := []string{"7", "7", "7", "12.5"}

		for i, input := range inputs {
			data, err := bson.Marshal(input)
			assert.NoError(t, err)

			var doc amountDoc
			err = bson.UnmarshalWithRegistry(reg, data, &doc)
			assert.NoError(t, err)
			assert.Equal(t, expected[i], doc.Amount.String())
		}
	})

	t.Run("Null Decodes To Zero", func(t *testing.T) {
		data, err := bson.Marshal(bson.M{"amount": nil})
		assert.NoError(t, err)

		var doc amountDoc
		err = bson.UnmarshalWithRegistry(reg, data, &doc)
		assert.NoError(t, err)
		assert.True(t, doc.Amount.IsZero())
	})

	t.Run("Invalid String", func(t *testing.T) {
		data, err := bson.Marshal(bson.M{"amount": "abc"})
		assert.NoError(t, err)

		var doc amountDoc
		err = bson.UnmarshalWithRegistry(reg, data, &doc)
		assert.Error(t, err)
	})
}
