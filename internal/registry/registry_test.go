package registry

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wpreg/internal/ctxlog"
	"github.com/vk/wpreg/internal/cuts"
	"github.com/vk/wpreg/internal/workpoint"
	"github.com/vk/wpreg/internal/wperr"
)

const (
	fpA = "26d6df804ad7045c1f62d61d02de6ffd"
	fpB = "0000000000000000000000000000beef"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newDefinition(t *testing.T, name string, thresholds ...float64) *workpoint.Definition {
	t.Helper()
	table, err := cuts.FromSlice(thresholds)
	require.NoError(t, err)
	def, err := workpoint.New(name, "p:Values", "p:Categories", table)
	require.NoError(t, err)
	return def
}

func TestRegisterIsIdempotent(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testContext(), "wp90", fpA))
	require.NoError(t, r.Register(testContext(), "wp90", fpA))

	assert.Equal(t, 1, r.Len())
	got, err := r.Lookup("wp90")
	require.NoError(t, err)
	assert.Equal(t, fpA, got)
}

func TestRegisterConflictKeepsOriginal(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testContext(), "wp90", fpA))

	err := r.Register(testContext(), "wp90", fpB)
	require.ErrorIs(t, err, wperr.ErrRegistryConflict)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "wp90", conflict.Name)
	assert.Equal(t, fpA, conflict.Existing)
	assert.Equal(t, fpB, conflict.Proposed)

	got, err := r.Lookup("wp90")
	require.NoError(t, err)
	assert.Equal(t, fpA, got)
}

func TestRegisterRejectsEmptyFields(t *testing.T) {
	r := New()
	require.ErrorIs(t, r.Register(testContext(), "", fpA), wperr.ErrInvalidDefinition)
	require.ErrorIs(t, r.Register(testContext(), "wp90", ""), wperr.ErrInvalidDefinition)
	assert.Equal(t, 0, r.Len())
}

func TestRegisterLogsThroughContextLogger(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	require.NoError(t, New().Register(ctx, "wp90", fpA))
	assert.Contains(t, buf.String(), "Registering working point.")
	assert.Contains(t, buf.String(), "name=wp90")
}

func TestLookupUnknown(t *testing.T) {
	_, err := New().Lookup("wp80")
	require.ErrorIs(t, err, wperr.ErrUnknownWorkingPoint)
}

func TestRegisterDefinitionRebuiltFromScratch(t *testing.T) {
	r := New()
	first := newDefinition(t, "wp90", 0.284, 0.432)
	require.NoError(t, r.RegisterDefinition(testContext(), first))

	again := newDefinition(t, "wp90", 0.284, 0.432)
	require.NoError(t, r.RegisterDefinition(testContext(), again))

	got, err := r.Lookup("wp90")
	require.NoError(t, err)
	assert.Equal(t, first.Fingerprint(), got)

	changed := newDefinition(t, "wp90", 0.284, 0.5)
	require.ErrorIs(t, r.RegisterDefinition(testContext(), changed), wperr.ErrRegistryConflict)
}

func TestEntriesSorted(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(testContext(), "wp90", fpA))
	require.NoError(t, r.Register(testContext(), "wp80", fpB))

	assert.Equal(t, []Entry{{Name: "wp80", Fingerprint: fpB}, {Name: "wp90", Fingerprint: fpA}}, r.Entries())
}

func TestDefaultAndReset(t *testing.T) {
	t.Cleanup(Default().Reset)

	require.NoError(t, Default().Register(testContext(), "wp90", fpA))
	assert.Same(t, Default(), Default())
	assert.Equal(t, 1, Default().Len())

	Default().Reset()
	assert.Equal(t, 0, Default().Len())
}

func TestConcurrentRegisterHasSingleWinner(t *testing.T) {
	r := New()
	var wg sync.WaitGroup
	results := make([]error, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fp := fpA
			if i%2 == 1 {
				fp = fpB
			}
			results[i] = r.Register(testContext(), "wp90", fp)
		}(i)
	}
	wg.Wait()

	winner, err := r.Lookup("wp90")
	require.NoError(t, err)
	for _, err := range results {
		if err != nil {
			var conflict *ConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, winner, conflict.Existing)
		}
	}
}

func TestRegisterAllIsAtomic(t *testing.T) {
	ctx := testContext()
	r := New()
	wp90 := newDefinition(t, "wp90", 0.284, 0.432)
	require.NoError(t, r.RegisterDefinition(testContext(), wp90))

	wp80 := newDefinition(t, "wp80", 0.1, 0.2)
	clash := newDefinition(t, "wp90", 0.3, 0.4)

	err := r.RegisterAll(ctx, []*workpoint.Definition{wp80, clash})
	require.ErrorIs(t, err, wperr.ErrRegistryConflict)

	_, err = r.Lookup("wp80")
	require.ErrorIs(t, err, wperr.ErrUnknownWorkingPoint, "a failed batch must not insert anything")
}

func TestRegisterAllDetectsConflictWithinBatch(t *testing.T) {
	r := New()
	err := r.RegisterAll(testContext(), []*workpoint.Definition{
		newDefinition(t, "wp90", 0.284, 0.432),
		newDefinition(t, "wp90", 0.284, 0.5),
	})
	require.ErrorIs(t, err, wperr.ErrRegistryConflict)
	assert.Equal(t, 0, r.Len())
}

func TestRegisterAllAcceptsRepeats(t *testing.T) {
	ctx := testContext()
	r := New()
	defs := []*workpoint.Definition{
		newDefinition(t, "wp90", 0.284, 0.432),
		newDefinition(t, "wp80", 0.1, 0.2),
		newDefinition(t, "wp90", 0.284, 0.432),
	}
	require.NoError(t, r.RegisterAll(ctx, defs))
	require.NoError(t, r.RegisterAll(ctx, defs))
	assert.Equal(t, 2, r.Len())
}
