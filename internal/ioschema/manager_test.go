package ioschema_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/internal/iodb"
	"github.com/gnames/virotaxa/internal/ioschema"
	"github.com/gnames/virotaxa/internal/iotesting"
	"github.com/gnames/virotaxa/pkg/errcode"
	"github.com/gnames/virotaxa/pkg/lifecycle"
	"github.com/gnames/virotaxa/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateNotConnected(t *testing.T) {
	var mgr lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())
	err := mgr.Migrate(context.Background())
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestConfig(t)
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	defer op.Close()

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Migrate(ctx))
	// second run changes nothing
	require.NoError(t, mgr.Migrate(ctx))

	for _, v := range schema.TableNames() {
		exists, err := op.TableExists(ctx, v)
		require.NoError(t, err)
		assert.True(t, exists, v)
	}
}
