package pulse

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localpulse/pulse/pkg/config"
	"github.com/localpulse/pulse/pkg/errors"
	"github.com/localpulse/pulse/pkg/events"
	"github.com/localpulse/pulse/pkg/filter"
	"github.com/localpulse/pulse/pkg/logging"
)

var testNow = time.Date(2025, 4, 16, 10, 0, 0, 0, time.UTC)

func testDraft(name string) events.EventDraft {
	return events.EventDraft{
		Name:            name,
		Description:     "A neighborhood gathering with live performances.",
		Category:        "Music",
		Date:            testNow.AddDate(0, 0, 3),
		Time:            "18:00",
		City:            "bengaluru",
		VenueName:       "Freedom Park",
		Price:           "Free",
		AgeGroup:        "All ages",
		RegistrationURL: "https://example.com/register",
	}
}

func newTestPulse(t *testing.T, opts ...Option) Pulse {
	t.Helper()
	nop := logging.Nop
	base := []Option{
		WithLogger(&nop),
		WithClock(func() time.Time { return testNow }),
	}
	p, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return p
}

func TestNewLoadsEmbeddedSeed(t *testing.T) {
	p := newTestPulse(t)

	all := p.Events()
	require.NotEmpty(t, all)
	assert.Equal(t, "feat1", all[0].ID)
	for _, ev := range all {
		assert.Equal(t, events.OrganizerSystem, ev.OrganizerID)
	}

	cities := p.Cities()
	require.Len(t, cities, 5)
	assert.Equal(t, "bengaluru", cities[0].ID)

	assert.NotEmpty(t, p.Categories())
}

func TestNewWithCustomSeed(t *testing.T) {
	seed := []events.Event{
		{ID: "a", Name: "Alpha", Category: "Tech", City: "bengaluru", Date: testNow},
	}
	p := newTestPulse(t, WithSeed(seed), WithCities(nil))

	all := p.Events()
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].ID)
	assert.Empty(t, p.Cities())
}

func TestCreateEventRequiresIdentity(t *testing.T) {
	p := newTestPulse(t, WithSeed(nil))

	for _, userID := range []string{"", "   ", "anonymous", "Anonymous", "ANONYMOUS"} {
		_, err := p.CreateEvent(userID, testDraft("Rooftop Jam"))
		require.Error(t, err, "userID %q", userID)
		assert.True(t, errors.IsAuthRequired(err))
	}

	// Rejected before the store is touched.
	assert.Empty(t, p.Events())
}

func TestSubmitCommentRequiresIdentity(t *testing.T) {
	p := newTestPulse(t)

	_, err := p.SubmitComment("anonymous", "feat1", events.CommentDraft{Rating: 5, Text: "Great!"})
	require.Error(t, err)
	assert.True(t, errors.IsAuthRequired(err))

	ev, err := p.Event("feat1")
	require.NoError(t, err)
	assert.Empty(t, ev.Comments)
}

func TestCreateEventPrependsAndStampsOrganizer(t *testing.T) {
	p := newTestPulse(t)
	before := len(p.Events())

	created, err := p.CreateEvent("user-42", testDraft("Rooftop Jam"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-42", created.OrganizerID)

	all := p.Events()
	require.Len(t, all, before+1)
	assert.Equal(t, created.ID, all[0].ID)

	mine := p.EventsByOrganizer("user-42")
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)
}

func TestUpdateEvent(t *testing.T) {
	p := newTestPulse(t)

	created, err := p.CreateEvent("user-42", testDraft("Rooftop Jam"))
	require.NoError(t, err)

	updated, err := p.UpdateEvent("user-42", created.ID, events.EventDraft{Name: "Terrace Jam"})
	require.NoError(t, err)
	assert.Equal(t, "Terrace Jam", updated.Name)
	assert.Equal(t, created.City, updated.City)

	_, err = p.UpdateEvent("anonymous", created.ID, events.EventDraft{Name: "Nope"})
	require.Error(t, err)
	assert.True(t, errors.IsAuthRequired(err))

	_, err = p.UpdateEvent("user-42", "missing", events.EventDraft{Name: "Nope"})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestSubmitCommentUpdatesRating(t *testing.T) {
	p := newTestPulse(t)

	// feat1 seeds with an editorial 4.9; a perfect comment rounds to 5.0.
	updated, err := p.SubmitComment("user-7", "feat1", events.CommentDraft{Rating: 5, Text: "Great!"})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, updated.Rating, 1e-9)
	require.Len(t, updated.Comments, 1)
	assert.Equal(t, testNow, updated.Comments[0].SubmittedAt)
}

func TestSearchUsesInjectedClock(t *testing.T) {
	seed := []events.Event{
		{ID: "today", Name: "Today Event", City: "bengaluru", Category: "Music", Date: testNow},
		{ID: "later", Name: "Later Event", City: "bengaluru", Category: "Music", Date: testNow.AddDate(0, 1, 0)},
	}
	p := newTestPulse(t, WithSeed(seed))

	got := p.Search(filter.Filter{Date: filter.DateToday})
	require.Len(t, got, 1)
	assert.Equal(t, "today", got[0].ID)

	// Empty filter returns everything in store order.
	assert.Len(t, p.Search(filter.Filter{}), 2)
}

func TestSuggestRebuildsAfterMutation(t *testing.T) {
	p := newTestPulse(t, WithSeed(nil))

	assert.Empty(t, p.Suggest("rooftop"))

	_, err := p.CreateEvent("user-42", testDraft("Rooftop Jam"))
	require.NoError(t, err)

	got := p.Suggest("rooftop")
	require.Len(t, got, 1)
	assert.Equal(t, "Rooftop Jam", got[0].Name)

	// Typos within tolerance still resolve.
	got = p.Suggest("roftop")
	require.Len(t, got, 1)
	assert.Equal(t, "Rooftop Jam", got[0].Name)
}

func TestSuggestLimitOption(t *testing.T) {
	var seed []events.Event
	for i := 0; i < 6; i++ {
		seed = append(seed, events.Event{
			ID:   fmt.Sprintf("e%d", i),
			Name: "Lantern Walk",
			City: "mysuru",
			Date: testNow,
		})
	}
	p := newTestPulse(t, WithSeed(seed), WithSuggestLimit(2))

	assert.Len(t, p.Suggest("lantern"), 2)
}

func TestSubscribePassthrough(t *testing.T) {
	p := newTestPulse(t)

	var calls int
	sub := p.Subscribe(func() { calls++ })

	_, err := p.CreateEvent("user-42", testDraft("Rooftop Jam"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Reads never broadcast.
	p.Events()
	p.Search(filter.Filter{})
	p.Suggest("rooftop")
	assert.Equal(t, 1, calls)

	p.Unsubscribe(sub)
	_, err = p.CreateEvent("user-42", testDraft("Another Jam"))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithConfigAppliesSuggestSettings(t *testing.T) {
	var seed []events.Event
	for i := 0; i < 4; i++ {
		seed = append(seed, events.Event{
			ID:   fmt.Sprintf("e%d", i),
			Name: "Lantern Walk",
			City: "mysuru",
			Date: testNow,
		})
	}
	cfg := &config.Config{
		LogLevel:         "warn",
		LogFormat:        "json",
		SuggestLimit:     2,
		SuggestTolerance: 0.4,
	}
	p := newTestPulse(t, WithSeed(seed), WithConfig(cfg))

	assert.Len(t, p.Suggest("lantern"), 2)
}

func TestWithEnvConfig(t *testing.T) {
	t.Setenv("PULSE_SUGGEST_LIMIT", "3")
	var seed []events.Event
	for i := 0; i < 5; i++ {
		seed = append(seed, events.Event{
			ID:   fmt.Sprintf("e%d", i),
			Name: "Lantern Walk",
			City: "mysuru",
			Date: testNow,
		})
	}
	p := newTestPulse(t, WithSeed(seed), WithEnvConfig())
	assert.Len(t, p.Suggest("lantern"), 3)
}

func TestWithEnvConfigReportsLoadFailure(t *testing.T) {
	t.Setenv("PULSE_SUGGEST_LIMIT", "0")

	_, err := New(WithEnvConfig())
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLoggerFromConfig(t *testing.T) {
	lg := loggerFromConfig(&config.Config{LogLevel: "warn", LogFormat: "json"})
	assert.Equal(t, zerolog.WarnLevel, lg.GetLevel())

	// Unknown level keeps the logger's ambient level instead of failing.
	lg = loggerFromConfig(&config.Config{LogLevel: "nonsense", LogFormat: "console"})
	assert.Equal(t, zerolog.GlobalLevel(), lg.GetLevel())
}

func TestDeterministicIDs(t *testing.T) {
	var n int
	p := newTestPulse(t, WithSeed(nil), WithIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))

	created, err := p.CreateEvent("user-42", testDraft("Rooftop Jam"))
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
}
