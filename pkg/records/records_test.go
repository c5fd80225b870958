package records_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/records"
)

func TestRowFit(t *testing.T) {
	row := records.Row{"a", "b", "c"}
	assert.Equal(t, records.Row{"a", "b"}, row.Fit(2))
	assert.Equal(t, records.Row{"a", "b", "c", ""}, row.Fit(4))

	fitted := row.Fit(3)
	fitted[0] = "z"
	assert.Equal(t, "a", row[0], "Fit must copy")
}

func TestRowClone(t *testing.T) {
	assert.Nil(t, records.Row(nil).Clone())
	row := records.Row{"x"}
	clone := row.Clone()
	clone[0] = "y"
	assert.Equal(t, "x", row[0])
}

func TestColumnGetSet(t *testing.T) {
	row := records.Row{"acme", "138"}

	v, err := records.Column(1).Get("s.csv", 4, row)
	require.NoError(t, err)
	assert.Equal(t, "138", v)

	_, err = records.Column(2).Get("s.csv", 4, row)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsDecodeError(err))
	var decodeErr *pkgerrors.DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, 4, decodeErr.Line)
	assert.Equal(t, 2, decodeErr.Column)

	require.NoError(t, records.Column(0).Set("s.csv", 4, row, "globex"))
	assert.Equal(t, "globex", row[0])
	assert.True(t, pkgerrors.IsDecodeError(records.Column(5).Set("s.csv", 4, row, "x")))
}

func TestColumns(t *testing.T) {
	cols, err := records.Columns("columns", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []records.Column{2, 0}, cols)

	_, err = records.Columns("columns")
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = records.Columns("columns", 1, -1)
	assert.True(t, pkgerrors.IsValidationError(err))

	_, err = records.Columns("columns", 1, 1)
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestEachSkipsDecodeErrors(t *testing.T) {
	captured := logging.CaptureLoggingForTest(t)

	r := records.NewSliceReader("leads.csv", nil,
		records.Row{"a"}, records.Row{"bad"}, records.Row{"c"})
	r.Errs = map[int]error{1: pkgerrors.NewDecodeError("leads.csv", 2, -1, errors.New("bare quote"))}

	var got []string
	var lines []int
	skipped, err := records.Each(context.Background(), r, func(line int, row records.Row) error {
		got = append(got, row[0])
		lines = append(lines, line)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	assert.Equal(t, []string{"a", "c"}, got)
	assert.Equal(t, []int{1, 3}, lines)
	captured.AssertContains(t, "Skipping undecodable row")
	captured.AssertContains(t, `"line":2`)
}

func TestEachStopsOnFatalError(t *testing.T) {
	logging.DisableLoggingForTest(t)

	r := records.NewSliceReader("leads.csv", nil, records.Row{"a"}, records.Row{"b"})
	r.Errs = map[int]error{0: errors.New("disk gone")}

	_, err := records.Each(context.Background(), r, func(int, records.Row) error { return nil })
	require.Error(t, err)
	assert.True(t, pkgerrors.IsIOError(err))
}

func TestEachPropagatesCallbackError(t *testing.T) {
	stop := errors.New("stop")
	r := records.NewSliceReader("x", nil, records.Row{"a"}, records.Row{"b"})
	calls := 0
	_, err := records.Each(context.Background(), r, func(int, records.Row) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestWriteHeader(t *testing.T) {
	w1, w2 := &records.SliceWriter{}, &records.SliceWriter{}

	require.NoError(t, records.WriteHeader(records.NewSliceReader("x", nil), w1))
	assert.Empty(t, w1.Rows)

	r := records.NewSliceReader("x", records.Row{"name", "phone"})
	require.NoError(t, records.WriteHeader(r, w1, nil, w2))
	assert.Equal(t, []records.Row{{"name", "phone"}}, w1.Rows)
	assert.Equal(t, []records.Row{{"name", "phone"}}, w2.Rows)
	assert.Equal(t, 1, w1.Flushes)
}
