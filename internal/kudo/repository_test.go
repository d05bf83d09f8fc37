package kudo_test

import (
	"context"
	"testing"
	"time"

	"kudos_web/internal/kudo"
	"kudos_web/internal/testutil"
	"kudos_web/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type feedFixture struct {
	db    *gorm.DB
	users user.Repository
	kudos kudo.Repository
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t, &user.User{}, &user.Profile{}, &kudo.Kudo{})
	return &feedFixture{db: db, users: user.NewGORMRepository(db), kudos: kudo.NewGORMRepository(db)}
}

func (f *feedFixture) user(t *testing.T, email, first, last string) *user.User {
	t.Helper()
	u := &user.User{Email: email, PasswordHash: "hash", Profile: user.Profile{FirstName: first, LastName: last}}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *feedFixture) kudo(t *testing.T, author, recipient *user.User, message string, emoji kudo.Emoji, at time.Time) {
	t.Helper()
	style := kudo.DefaultStyle()
	style.Emoji = emoji
	require.NoError(t, f.kudos.Create(context.Background(), &kudo.Kudo{
		Message:     message,
		Style:       style,
		AuthorID:    author.ID,
		RecipientID: recipient.ID,
		CreatedAt:   at,
	}))
}

func messages(kudos []kudo.Kudo) []string {
	out := make([]string, 0, len(kudos))
	for _, k := range kudos {
		out = append(out, k.Message)
	}
	return out
}

// seedFeed gives me three kudos and somebody else one.
func seedFeed(t *testing.T, f *feedFixture) *user.User {
	me := f.user(t, "me@example.com", "Mona", "Self")
	zed := f.user(t, "zed@example.com", "Zed", "Zulu")
	amy := f.user(t, "amy@example.com", "Amy", "Alpha")
	other := f.user(t, "other@example.com", "Otto", "Other")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	f.kudo(t, zed, me, "nice work", kudo.EmojiThumbsUp, base)
	f.kudo(t, amy, me, "great job", kudo.EmojiParty, base.Add(2*time.Hour))
	f.kudo(t, zed, me, "thanks for the help", kudo.EmojiHandsUp, base.Add(time.Hour))
	f.kudo(t, amy, other, "nice to meet you", kudo.EmojiParty, base.Add(3*time.Hour))
	return me
}

func TestFeed_OnlyRecipientsKudos(t *testing.T) {
	f := newFeedFixture(t)
	me := seedFeed(t, f)

	got, err := f.kudos.Feed(context.Background(), me.ID, kudo.NewFeedQuery("", ""))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"nice work", "great job", "thanks for the help"}, messages(got))
	for _, k := range got {
		assert.NotEmpty(t, k.Author.Profile.FirstName, "author profile is preloaded")
	}
}

func TestFeed_FilterIsCaseInsensitive(t *testing.T) {
	f := newFeedFixture(t)
	me := seedFeed(t, f)

	got, err := f.kudos.Feed(context.Background(), me.ID, kudo.NewFeedQuery("", "NICE"))
	require.NoError(t, err)
	assert.Equal(t, []string{"nice work"}, messages(got))
}

func TestFeed_FilterMatchesAuthorName(t *testing.T) {
	f := newFeedFixture(t)
	me := seedFeed(t, f)

	got, err := f.kudos.Feed(context.Background(), me.ID, kudo.NewFeedQuery("date", "zulu"))
	require.NoError(t, err)
	assert.Equal(t, []string{"thanks for the help", "nice work"}, messages(got))
}

func TestFeed_FilterFoldsNonASCII(t *testing.T) {
	f := newFeedFixture(t)
	me := f.user(t, "me@example.com", "Mona", "Self")
	emile := f.user(t, "emile@example.com", "Émile", "Zola")
	f.kudo(t, emile, me, "Ÿou rock", kudo.EmojiParty, time.Now())

	for _, filter := range []string{"émile", "ÉMILE", "ÿOU"} {
		got, err := f.kudos.Feed(context.Background(), me.ID, kudo.NewFeedQuery("", filter))
		require.NoError(t, err)
		assert.Equal(t, []string{"Ÿou rock"}, messages(got), filter)
	}
}

func TestFeed_FilterKeepsTrailingSpace(t *testing.T) {
	f := newFeedFixture(t)
	me := f.user(t, "me@example.com", "Mona", "Self")
	bob := f.user(t, "bob@example.com", "Bob", "B")
	now := time.Now()
	f.kudo(t, bob, me, "really nice", kudo.EmojiParty, now)
	f.kudo(t, bob, me, "nice one", kudo.EmojiParty, now.Add(time.Second))

	got, err := f.kudos.Feed(context.Background(), me.ID, kudo.NewFeedQuery("", "nice "))
	require.NoError(t, err)
	assert.Equal(t, []string{"nice one"}, messages(got))
}

func TestFeed_FilterEscapesWildcards(t *testing.T) {
	f := newFeedFixture(t)
	me := f.user(t, "me@example.com", "Mona", "Self")
	bob := f.user(t, "bob@example.com", "Bob", "B")
	now := time.Now()
	f.kudo(t, bob, me, "100% effort", kudo.EmojiParty, now)
	f.kudo(t, bob, me, "1000 thanks", kudo.EmojiParty, now)

	got, err := f.kudos.Feed(context.Background(), me.ID, kudo.NewFeedQuery("", "100%"))
	require.NoError(t, err)
	assert.Equal(t, []string{"100% effort"}, messages(got))
}

func TestFeed_Sort(t *testing.T) {
	f := newFeedFixture(t)
	me := seedFeed(t, f)
	ctx := context.Background()

	byDate, err := f.kudos.Feed(ctx, me.ID, kudo.NewFeedQuery("date", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"great job", "thanks for the help", "nice work"}, messages(byDate))

	bySender, err := f.kudos.Feed(ctx, me.ID, kudo.NewFeedQuery("sender", ""))
	require.NoError(t, err)
	require.Len(t, bySender, 3)
	assert.Equal(t, "Amy", bySender[0].Author.Profile.FirstName)
	assert.Equal(t, "Zed", bySender[1].Author.Profile.FirstName)
	assert.Equal(t, "Zed", bySender[2].Author.Profile.FirstName)

	byEmoji, err := f.kudos.Feed(ctx, me.ID, kudo.NewFeedQuery("emoji", ""))
	require.NoError(t, err)
	assert.Equal(t, []string{"thanks for the help", "great job", "nice work"}, messages(byEmoji))
}

func TestRecent(t *testing.T) {
	f := newFeedFixture(t)
	seedFeed(t, f)

	got, err := f.kudos.Recent(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"nice to meet you", "great job", "thanks for the help"}, messages(got))
	assert.Equal(t, "Otto", got[0].Recipient.Profile.FirstName)
}
