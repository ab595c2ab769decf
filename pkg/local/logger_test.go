package local_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/logkit/pkg/attrs"
	"github.com/dmitrymomot/logkit/pkg/local"
	"github.com/dmitrymomot/logkit/pkg/logscope"
	"github.com/dmitrymomot/logkit/pkg/severity"
)

// record captures one emission as the stub parent saw it: the message,
// the label and attribute state that applied at the moment of the call.
type record struct {
	level severity.Severity
	msg   string
	label string
	tags  attrs.Map
}

// stubParent is a minimal in-memory Leveled implementation standing in
// for the sink-facing base logger.
type stubParent struct {
	level    severity.Severity
	label    string
	static   attrs.Map
	overlays []attrs.Map
	records  []record
	appended []string
}

func newStubParent(level severity.Severity) *stubParent {
	return &stubParent{level: level, static: attrs.Map{}}
}

func (p *stubParent) Level() severity.Severity { return p.level }

func (p *stubParent) SetLevel(l severity.Severity) { p.level = l }

func (p *stubParent) Label() string { return p.label }

func (p *stubParent) SetLabel(l string) { p.label = l }

func (p *stubParent) WithLevel(ctx context.Context, level severity.Severity, body func(context.Context) error) error {
	prev := p.level
	p.level = level
	defer func() { p.level = prev }()
	return body(ctx)
}

func (p *stubParent) Tag(ctx context.Context, tags attrs.Map, body func(context.Context) error) error {
	p.overlays = append(p.overlays, attrs.Flatten(tags))
	defer func() { p.overlays = p.overlays[:len(p.overlays)-1] }()
	return body(ctx)
}

func (p *stubParent) Attributes(context.Context) attrs.Map {
	merged := attrs.Merge(nil, p.static)
	for _, o := range p.overlays {
		merged = attrs.Merge(merged, o)
	}
	return merged
}

func (p *stubParent) Enabled(ctx context.Context, level severity.Severity) bool {
	if threshold, ok := logscope.EmissionLevel(ctx); ok {
		return severity.Compare(level, threshold) >= 0
	}
	return severity.Compare(level, p.level) >= 0
}

func (p *stubParent) Log(ctx context.Context, level severity.Severity, msg string, tags ...attrs.Map) {
	if !p.Enabled(ctx, level) {
		return
	}
	merged := p.Attributes(ctx)
	for _, t := range tags {
		merged = attrs.Merge(merged, attrs.Flatten(t))
	}
	label, ok := logscope.EmissionLabel(ctx)
	if !ok {
		label = p.label
	}
	p.records = append(p.records, record{level: level, msg: msg, label: label, tags: merged})
}

func (p *stubParent) Append(msg string) {
	p.appended = append(p.appended, msg)
}

var _ local.Leveled = (*stubParent)(nil)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil parent fails fast", func(t *testing.T) {
		t.Parallel()
		_, err := local.New(nil)
		require.ErrorIs(t, err, local.ErrNilParent)
	})

	t.Run("defaults defer to parent", func(t *testing.T) {
		t.Parallel()
		parent := newStubParent(severity.Warn)
		parent.SetLabel("parent")
		log, err := local.New(parent)
		require.NoError(t, err)
		assert.Equal(t, severity.Warn, log.Level())
		assert.Equal(t, "parent", log.EffectiveLabel())
		assert.Empty(t, log.LocalAttributes(context.Background()))
	})
}

func TestEffectiveLevelPrecedence(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Warn)
	log, err := local.New(parent, local.WithLevel(severity.Info))
	require.NoError(t, err)
	ctx := context.Background()

	// Local override beats parent.
	assert.Equal(t, severity.Info, log.EffectiveLevel(ctx))

	// Scope override beats local.
	err = log.WithLocalLevel(ctx, severity.Debug, func(ctx context.Context) error {
		assert.Equal(t, severity.Debug, log.EffectiveLevel(ctx))

		// A permanent change during the scope stays shadowed for the
		// scope's whole extent.
		log.SetLevel(severity.Fatal)
		assert.Equal(t, severity.Debug, log.EffectiveLevel(ctx))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, severity.Fatal, log.EffectiveLevel(ctx))

	// Clearing the local override reverts to the parent.
	log.ClearLevel()
	assert.Equal(t, severity.Warn, log.EffectiveLevel(ctx))
}

func TestLocalDebugOverParentWarn(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Warn)
	log, err := local.New(parent, local.WithLevel(severity.Debug))
	require.NoError(t, err)
	ctx := context.Background()

	log.Debug(ctx, "through local")
	parent.Log(ctx, severity.Debug, "direct to parent")

	require.Len(t, parent.records, 1)
	assert.Equal(t, "through local", parent.records[0].msg)
	assert.Equal(t, severity.Warn, parent.Level(), "parent ambient level untouched between calls")
}

func TestWithLevel(t *testing.T) {
	t.Parallel()

	t.Run("changes local and parent for the extent", func(t *testing.T) {
		t.Parallel()
		parent := newStubParent(severity.Warn)
		log, err := local.New(parent)
		require.NoError(t, err)

		err = log.WithLevel(context.Background(), severity.Debug, func(ctx context.Context) error {
			assert.Equal(t, severity.Debug, log.EffectiveLevel(ctx))
			assert.Equal(t, severity.Debug, parent.Level())
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, severity.Warn, parent.Level())
	})

	t.Run("reverts even when body fails", func(t *testing.T) {
		t.Parallel()
		parent := newStubParent(severity.Warn)
		log, err := local.New(parent)
		require.NoError(t, err)
		boom := errors.New("boom")

		err = log.WithLevel(context.Background(), severity.Debug, func(context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, severity.Warn, parent.Level())
	})
}

func TestWithLocalLevelLeavesParentUntouched(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Warn)
	log, err := local.New(parent)
	require.NoError(t, err)

	err = log.WithLocalLevel(context.Background(), severity.Debug, func(ctx context.Context) error {
		assert.Equal(t, severity.Debug, log.EffectiveLevel(ctx))
		assert.Equal(t, severity.Warn, parent.Level())
		return nil
	})
	require.NoError(t, err)
}

func TestSilence(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Debug)
	log, err := local.New(parent)
	require.NoError(t, err)

	err = log.Silence(context.Background(), func(ctx context.Context) error {
		log.Info(ctx, "muted")
		log.Error(ctx, "still heard")
		return nil
	})
	require.NoError(t, err)

	require.Len(t, parent.records, 1)
	assert.Equal(t, "still heard", parent.records[0].msg)
}

func TestLabels(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Debug)
	parent.SetLabel("app")
	log, err := local.New(parent, local.WithLabel("billing"))
	require.NoError(t, err)
	ctx := context.Background()

	log.Info(ctx, "msg")
	require.Len(t, parent.records, 1)
	assert.Equal(t, "billing", parent.records[0].label)
	assert.Equal(t, "app", parent.Label(), "parent label untouched by emission")

	log.ClearLabel()
	assert.Equal(t, "app", log.EffectiveLabel())

	log.SetLabel("payments")
	log.Info(ctx, "msg2")
	assert.Equal(t, "payments", parent.records[1].label)
}

func TestPermanentTags(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Debug)
	log, err := local.New(parent, local.WithTags(attrs.Map{"component": "api"}))
	require.NoError(t, err)
	ctx := context.Background()

	log.AddTags(attrs.Map{"user": attrs.Map{"id": 1}})
	assert.Equal(t, attrs.Map{"component": "api", "user.id": 1}, log.LocalAttributes(ctx))

	log.RemoveTags("user.id")
	assert.Equal(t, attrs.Map{"component": "api"}, log.LocalAttributes(ctx))

	log.Info(ctx, "msg")
	require.Len(t, parent.records, 1)
	assert.Equal(t, "api", parent.records[0].tags["component"])
}

func TestLocalAttributesScopeReplacesTemplate(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Debug)
	log, err := local.New(parent, local.WithTags(attrs.Map{"component": "api"}))
	require.NoError(t, err)

	err = log.Tag(context.Background(), attrs.Map{"req": 1}, func(ctx context.Context) error {
		// An active scope overlay replaces the template, it does not
		// merge with it.
		assert.Equal(t, attrs.Map{"req": 1}, log.LocalAttributes(ctx))
		return nil
	})
	require.NoError(t, err)
}

func TestAllAttributes(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Debug)
	parent.static = attrs.Map{"env": "test", "component": "app"}
	log, err := local.New(parent, local.WithTags(attrs.Map{"component": "api"}))
	require.NoError(t, err)

	got := log.AllAttributes(context.Background())
	assert.Equal(t, attrs.Map{"env": "test", "component": "api"}, got)
}

func TestLazyTagsResolveAtEmission(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Debug)
	calls := 0
	log, err := local.New(parent, local.WithTags(attrs.Map{
		"seq": attrs.Lazy(func() any { calls++; return calls }),
	}))
	require.NoError(t, err)
	ctx := context.Background()

	log.Info(ctx, "first")
	log.Info(ctx, "second")

	require.Len(t, parent.records, 2)
	assert.Equal(t, 1, parent.records[0].tags["seq"])
	assert.Equal(t, 2, parent.records[1].tags["seq"], "lazy values evaluate per call")
}

func TestTagActive(t *testing.T) {
	t.Parallel()

	t.Run("no active scope drops the tags", func(t *testing.T) {
		t.Parallel()
		parent := newStubParent(severity.Debug)
		log, err := local.New(parent)
		require.NoError(t, err)
		ctx, _ := logscope.Ensure(context.Background())

		assert.False(t, log.TagActive(ctx, attrs.Map{"user": 1}))
		log.Info(ctx, "msg")
		require.Len(t, parent.records, 1)
		assert.NotContains(t, parent.records[0].tags, "user")
	})

	t.Run("no scope in context drops the tags", func(t *testing.T) {
		t.Parallel()
		parent := newStubParent(severity.Debug)
		log, err := local.New(parent)
		require.NoError(t, err)
		assert.False(t, log.TagActive(context.Background(), attrs.Map{"user": 1}))
	})

	t.Run("merges into the active scope", func(t *testing.T) {
		t.Parallel()
		parent := newStubParent(severity.Debug)
		log, err := local.New(parent)
		require.NoError(t, err)

		err = log.Tag(context.Background(), attrs.Map{"req": 1}, func(ctx context.Context) error {
			require.True(t, log.TagActive(ctx, attrs.Map{"user": 7}))
			log.Info(ctx, "msg")
			return nil
		})
		require.NoError(t, err)
		require.Len(t, parent.records, 1)
		assert.Equal(t, 7, parent.records[0].tags["user"])
		assert.Equal(t, 1, parent.records[0].tags["req"])
	})
}

func TestScopedTagsNesting(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Debug)
	log, err := local.New(parent)
	require.NoError(t, err)

	err = log.Tag(context.Background(), attrs.Map{"outer": 1}, func(ctx context.Context) error {
		require.NoError(t, log.Tag(ctx, attrs.Map{"inner": 2}, func(ctx context.Context) error {
			log.Info(ctx, "inside")
			return nil
		}))
		log.Info(ctx, "outside inner")
		return nil
	})
	require.NoError(t, err)

	require.Len(t, parent.records, 2)
	assert.Equal(t, 1, parent.records[0].tags["outer"])
	assert.Equal(t, 2, parent.records[0].tags["inner"])
	assert.NotContains(t, parent.records[1].tags, "inner")
}

func TestEnabled(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Warn)
	log, err := local.New(parent)
	require.NoError(t, err)
	ctx := context.Background()

	assert.False(t, log.Enabled(ctx, severity.Debug))
	assert.True(t, log.Enabled(ctx, severity.Warn))
	assert.True(t, log.Enabled(ctx, severity.Unknown))

	log.SetLevel(severity.Debug)
	assert.True(t, log.Enabled(ctx, severity.Debug))
}

func TestChaining(t *testing.T) {
	t.Parallel()

	base := newStubParent(severity.Warn)
	mid, err := local.New(base, local.WithLevel(severity.Info), local.WithLabel("mid"))
	require.NoError(t, err)
	leaf, err := local.New(mid, local.WithLevel(severity.Debug))
	require.NoError(t, err)
	ctx := context.Background()

	leaf.Debug(ctx, "deep")
	require.Len(t, base.records, 1)
	assert.Equal(t, "deep", base.records[0].msg)
	assert.Equal(t, "mid", base.records[0].label, "label inherited from the nearest override")

	// Intermediate and base thresholds are unaffected by the emission.
	assert.Equal(t, severity.Warn, base.Level())
	assert.Equal(t, severity.Info, mid.Level())
}

func TestChainedLabelDeferralSurvivesEmission(t *testing.T) {
	t.Parallel()

	base := newStubParent(severity.Debug)
	base.SetLabel("app")
	mid, err := local.New(base)
	require.NoError(t, err)
	leaf, err := local.New(mid)
	require.NoError(t, err)
	ctx := context.Background()

	leaf.Info(ctx, "first")
	require.Len(t, base.records, 1)
	assert.Equal(t, "app", base.records[0].label)

	// Emitting through the chain must not freeze the inherited label
	// into the intermediate logger: a later base rename still flows.
	base.SetLabel("renamed")
	assert.Equal(t, "renamed", mid.EffectiveLabel())
	assert.Equal(t, "renamed", leaf.EffectiveLabel())

	leaf.Info(ctx, "second")
	require.Len(t, base.records, 2)
	assert.Equal(t, "renamed", base.records[1].label)
}

func TestAppendForwards(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Fatal)
	log, err := local.New(parent)
	require.NoError(t, err)

	log.Append("raw line")
	assert.Equal(t, []string{"raw line"}, parent.appended)
}

func TestConcurrentUnitsDoNotShareScopes(t *testing.T) {
	t.Parallel()

	parent := newStubParent(severity.Debug)
	log, err := local.New(parent)
	require.NoError(t, err)

	done := make(chan attrs.Map, 2)
	for i := 0; i < 2; i++ {
		go func(id int) {
			ctx, _ := logscope.Ensure(context.Background())
			_ = log.Tag(ctx, attrs.Map{"id": id}, func(ctx context.Context) error {
				done <- log.LocalAttributes(ctx)
				return nil
			})
		}(i)
	}

	seen := map[any]bool{}
	for i := 0; i < 2; i++ {
		m := <-done
		require.Len(t, m, 1, "unit observed foreign tags")
		seen[m["id"]] = true
	}
	assert.Len(t, seen, 2)
}
