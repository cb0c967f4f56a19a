package db_test

import (
	"testing"

	"github.com/gnames/virotaxa/internal/iodb"
	"github.com/gnames/virotaxa/pkg/db"
	"github.com/stretchr/testify/assert"
)

func TestPgxOperatorImplementsInterface(t *testing.T) {
	var op db.Operator = iodb.NewPgxOperator()
	assert.Nil(t, op.Pool(), "pool is nil before Connect")
	assert.NoError(t, op.Close())
}
