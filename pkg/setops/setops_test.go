package setops_test

import (
	"context"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/logging"
	"github.com/agentstation/leadmerge/pkg/records"
	"github.com/agentstation/leadmerge/pkg/setops"
)

func src(name string, rows ...records.Row) records.Reader {
	return records.NewSliceReader(name, nil, rows...)
}

func leads(keys ...string) []records.Row {
	rows := make([]records.Row, len(keys))
	for i, k := range keys {
		rows[i] = records.Row{k, "phone-" + k}
	}
	return rows
}

func sorted(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.Strings(out)
	return out
}

func TestComplement(t *testing.T) {
	logging.DisableLoggingForTest(t)
	ctx := context.Background()

	w := &records.SliceWriter{}
	res, err := setops.Complement(ctx,
		src("total", leads("a", "b", "c", "d")...),
		src("single", leads("b", "d", "x")...),
		w, setops.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Written)
	if diff := cmp.Diff([]records.Row{{"a", "phone-a"}, {"c", "phone-c"}}, w.Rows); diff != "" {
		t.Errorf("complement mismatch (-want +got):\n%s", diff)
	}
}

func TestComplementRestoresBase(t *testing.T) {
	logging.DisableLoggingForTest(t)
	ctx := context.Background()
	base := []string{"a", "b", "c", "d"}
	sub := []string{"b", "d", "z"}

	diff := &records.SliceWriter{}
	_, err := setops.Complement(ctx, src("base", leads(base...)...), src("sub", leads(sub...)...), diff, setops.Options{})
	require.NoError(t, err)

	both := &records.SliceWriter{}
	_, err = setops.Intersection(ctx, []records.Reader{src("base", leads(base...)...), src("sub", leads(sub...)...)}, both, setops.Options{})
	require.NoError(t, err)

	restored := append(diff.Keys(0), both.Keys(0)...)
	assert.Equal(t, sorted(base), sorted(restored))
}

func TestComplementIdempotent(t *testing.T) {
	logging.DisableLoggingForTest(t)
	ctx := context.Background()

	first := &records.SliceWriter{}
	_, err := setops.Complement(ctx, src("base", leads("a", "b", "c")...), src("sub", leads("b")...), first, setops.Options{})
	require.NoError(t, err)

	second := &records.SliceWriter{}
	res, err := setops.Complement(ctx, src("first", first.Rows...), src("sub", leads("b")...), second, setops.Options{})
	require.NoError(t, err)
	assert.Equal(t, first.Rows, second.Rows)
	assert.Equal(t, 2, res.Written)

	empty := &records.SliceWriter{}
	res, err = setops.Complement(ctx, src("first", first.Rows...), src("first", first.Rows...), empty, setops.Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Written)
}

func TestComplementCopiesBaseHeader(t *testing.T) {
	logging.DisableLoggingForTest(t)
	w := &records.SliceWriter{}
	base := records.NewSliceReader("base", records.Row{"company", "phone"}, leads("a")...)
	sub := records.NewSliceReader("sub", records.Row{"name", "tel"})
	_, err := setops.Complement(context.Background(), base, sub, w, setops.Options{})
	require.NoError(t, err)
	assert.Equal(t, []records.Row{{"company", "phone"}, {"a", "phone-a"}}, w.Rows)
}

func TestComplementRequiresBothSources(t *testing.T) {
	_, err := setops.Complement(context.Background(), nil, src("x"), &records.SliceWriter{}, setops.Options{})
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestUnion(t *testing.T) {
	logging.DisableLoggingForTest(t)
	ctx := context.Background()

	t.Run("first source wins on duplicate keys", func(t *testing.T) {
		w := &records.SliceWriter{}
		res, err := setops.Union(ctx, []records.Reader{
			src("a", records.Row{"x", "from-a"}, records.Row{"y", "from-a"}),
			src("b", records.Row{"y", "from-b"}, records.Row{"z", "from-b"}),
		}, w, setops.Options{})
		require.NoError(t, err)
		assert.Equal(t, []records.Row{{"x", "from-a"}, {"y", "from-a"}, {"z", "from-b"}}, w.Rows)
		assert.Equal(t, 3, res.Written)
		assert.Equal(t, 1, res.New)
		assert.Equal(t, []int{2, 1}, res.Contributed)
	})

	t.Run("duplicates inside the first source", func(t *testing.T) {
		w := &records.SliceWriter{}
		_, err := setops.Union(ctx, []records.Reader{
			src("a", records.Row{"x", "1"}, records.Row{"x", "2"}),
		}, w, setops.Options{})
		require.NoError(t, err)
		assert.Equal(t, []records.Row{{"x", "1"}}, w.Rows)
	})

	t.Run("self union", func(t *testing.T) {
		w := &records.SliceWriter{}
		res, err := setops.Union(ctx, []records.Reader{
			src("a", leads("a", "b", "c")...),
			src("a", leads("a", "b", "c")...),
		}, w, setops.Options{})
		require.NoError(t, err)
		assert.Equal(t, 3, res.Written)
		assert.Zero(t, res.New)
	})

	t.Run("new count only for two sources", func(t *testing.T) {
		res, err := setops.Union(ctx, []records.Reader{
			src("a", leads("a")...), src("b", leads("b")...), src("c", leads("c")...),
		}, &records.SliceWriter{}, setops.Options{})
		require.NoError(t, err)
		assert.Zero(t, res.New)
		assert.Equal(t, []int{1, 1, 1}, res.Contributed)
	})
}

func TestUnionMonotonic(t *testing.T) {
	logging.DisableLoggingForTest(t)
	ctx := context.Background()
	sets := [][]string{{"a", "b"}, {"b", "c"}, {"c", "d", "a"}}

	prev := 0
	for n := 1; n <= len(sets); n++ {
		var readers []records.Reader
		distinct := map[string]bool{}
		for _, keys := range sets[:n] {
			readers = append(readers, src("s", leads(keys...)...))
			for _, k := range keys {
				distinct[k] = true
			}
		}
		res, err := setops.Union(ctx, readers, &records.SliceWriter{}, setops.Options{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Written, prev)
		assert.Equal(t, len(distinct), res.Written)
		prev = res.Written
	}
}

func TestIntersection(t *testing.T) {
	logging.DisableLoggingForTest(t)
	ctx := context.Background()

	t.Run("canonical row from first source", func(t *testing.T) {
		w := &records.SliceWriter{}
		res, err := setops.Intersection(ctx, []records.Reader{
			src("a", records.Row{"x", "from-a"}, records.Row{"y", "from-a"}),
			src("b", records.Row{"y", "from-b"}, records.Row{"x", "from-b"}),
			src("c", records.Row{"x", "from-c"}),
		}, w, setops.Options{})
		require.NoError(t, err)
		assert.Equal(t, []records.Row{{"x", "from-a"}}, w.Rows)
		assert.Equal(t, 1, res.Written)
	})

	t.Run("commutative key set", func(t *testing.T) {
		a, b := leads("a", "b", "c", "d"), leads("d", "b", "e")
		ab, ba := &records.SliceWriter{}, &records.SliceWriter{}
		_, err := setops.Intersection(ctx, []records.Reader{src("a", a...), src("b", b...)}, ab, setops.Options{})
		require.NoError(t, err)
		_, err = setops.Intersection(ctx, []records.Reader{src("b", b...), src("a", a...)}, ba, setops.Options{})
		require.NoError(t, err)
		assert.Equal(t, sorted(ab.Keys(0)), sorted(ba.Keys(0)))
	})

	t.Run("single source is identity", func(t *testing.T) {
		w := &records.SliceWriter{}
		res, err := setops.Intersection(ctx, []records.Reader{src("a", leads("a", "b")...)}, w, setops.Options{})
		require.NoError(t, err)
		assert.Equal(t, leads("a", "b"), w.Rows)
		assert.Equal(t, 2, res.Written)
	})

	t.Run("empty intersection stops early", func(t *testing.T) {
		third := records.NewSliceReader("c", nil, leads("a")...)
		w := &records.SliceWriter{}
		res, err := setops.Intersection(ctx, []records.Reader{
			src("a", leads("a")...), src("b", leads("b")...), third,
		}, w, setops.Options{})
		require.NoError(t, err)
		assert.Zero(t, res.Written)
		assert.Empty(t, w.Rows)
		row, err := third.Read()
		require.NoError(t, err, "third source must not have been consumed")
		assert.Equal(t, records.Row{"a", "phone-a"}, row)
	})
}

func TestEmptySourceList(t *testing.T) {
	ctx := context.Background()
	_, err := setops.Union(ctx, nil, &records.SliceWriter{}, setops.Options{})
	assert.True(t, pkgerrors.IsValidationError(err))
	_, err = setops.Intersection(ctx, []records.Reader{}, &records.SliceWriter{}, setops.Options{})
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestNegativeKeyColumn(t *testing.T) {
	_, err := setops.Union(context.Background(), []records.Reader{src("a")}, &records.SliceWriter{}, setops.Options{KeyColumn: -1})
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestKeyColumnSelectsIdentity(t *testing.T) {
	logging.DisableLoggingForTest(t)
	w := &records.SliceWriter{}
	_, err := setops.Union(context.Background(), []records.Reader{
		src("a", records.Row{"1", "acme"}, records.Row{"2", "acme"}, records.Row{"3", "globex"}),
	}, w, setops.Options{KeyColumn: 1})
	require.NoError(t, err)
	assert.Equal(t, []records.Row{{"1", "acme"}, {"3", "globex"}}, w.Rows)
}
