package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"opftube/pkg/database"
	"opftube/pkg/jwt"
	"opftube/pkg/logger"
	"opftube/pkg/queue"
	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.Event
	sent   chan struct{}
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{sent: make(chan struct{}, 16)}
}

func (p *recordingPublisher) PublishEvent(ctx context.Context, event queue.Event) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
	p.sent <- struct{}{}
	return nil
}

func (p *recordingPublisher) wait(t *testing.T) queue.Event {
	t.Helper()
	select {
	case <-p.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("event was not published")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type testEnv struct {
	db     *gorm.DB
	log    *logger.Logger
	events *recordingPublisher
	jwt    *jwt.Service

	users         persistent.UserRepository
	channels      persistent.ChannelRepository
	videos        persistent.VideoRepository
	history       persistent.HistoryRepository
	comments      persistent.CommentRepository
	categories    persistent.CategoryRepository
	posts         persistent.PostRepository
	subscriptions persistent.SubscriptionRepository
	playlists     persistent.PlaylistRepository
	stats         persistent.StatsRepository

	auth     AuthUseCase
	channel  ChannelUseCase
	video    VideoUseCase
	comment  CommentUseCase
	category CategoryUseCase
	post     PostUseCase
	sub      SubscriptionUseCase
	playlist PlaylistUseCase
	hist     HistoryUseCase
	search   SearchUseCase
	admin    AdminUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.New()
	db, err := database.NewSQLiteDB("file::memory:", log)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	env := &testEnv{
		db:            db,
		log:           log,
		events:        newRecordingPublisher(),
		jwt:           jwt.NewService("test-secret"),
		users:         persistent.NewUserRepository(db),
		channels:      persistent.NewChannelRepository(db),
		videos:        persistent.NewVideoRepository(db),
		history:       persistent.NewHistoryRepository(db),
		comments:      persistent.NewCommentRepository(db),
		categories:    persistent.NewCategoryRepository(db),
		posts:         persistent.NewPostRepository(db),
		subscriptions: persistent.NewSubscriptionRepository(db),
		playlists:     persistent.NewPlaylistRepository(db),
		stats:         persistent.NewStatsRepository(db),
	}

	env.auth = NewAuthUseCase(env.users, env.jwt, log)
	env.channel = NewChannelUseCase(env.channels, env.videos, env.users, log)
	env.video = NewVideoUseCase(env.videos, env.channels, env.history, nil, env.events, log)
	env.comment = NewCommentUseCase(env.comments, env.videos, env.users, log)
	env.category = NewCategoryUseCase(env.categories, log)
	env.post = NewPostUseCase(env.posts, env.channels, log)
	env.sub = NewSubscriptionUseCase(env.subscriptions, env.channels, env.events, log)
	env.playlist = NewPlaylistUseCase(env.playlists, env.videos, log)
	env.hist = NewHistoryUseCase(env.history, env.videos)
	env.search = NewSearchUseCase(env.videos, nil, log)
	env.admin = NewAdminUseCase(env.stats, env.videos, env.channels, env.comments, env.posts, env.users)
	return env
}

func (env *testEnv) register(t *testing.T, name string) entity.Actor {
	t.Helper()
	user, _, err := env.auth.Register(context.Background(), name, strings.ToLower(name)+"@example.com", "secret")
	require.NoError(t, err)
	return entity.Actor{UserID: user.ID, Role: user.Role}
}

func (env *testEnv) createChannel(t *testing.T, actor entity.Actor, handle string) *entity.Channel {
	t.Helper()
	channel, err := env.channel.Create(context.Background(), actor, entity.ChannelDraft{Name: handle + " TV", Handle: handle})
	require.NoError(t, err)
	return channel
}

func (env *testEnv) createVideo(t *testing.T, actor entity.Actor, channelID, title string) *entity.Video {
	t.Helper()
	video, err := env.video.Create(context.Background(), actor, entity.VideoDraft{
		Title:        title,
		VideoURL:     "https://cdn.example.com/" + title + ".mp4",
		ThumbnailURL: "https://cdn.example.com/" + title + ".jpg",
		ChannelID:    channelID,
		Duration:     "10:00",
	})
	require.NoError(t, err)
	return video
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func adminActor() entity.Actor {
	return entity.Actor{UserID: "admin-id", Role: entity.RoleAdmin}
}

func isKind(err, kind error) bool { return errors.Is(err, kind) }

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"45", 45},
		{"0:59", 59},
		{"1:30", 90},
		{"1:02:03", 3723},
		{"", 0},
		{"abc", 0},
		{"1:xx", 0},
		{"1:2:3:4", 0},
		{"-5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestGenerateHandle(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	handle := GenerateHandle("Ann  Marie Smith", rng)
	assert.True(t, strings.HasPrefix(handle, "@ann_marie_smith_"), handle)

	assert.True(t, strings.HasPrefix(GenerateHandle("   ", rng), "@user_"))
	assert.Contains(t, DefaultAvatar("Ann Marie"), "seed=Ann+Marie")
}

func TestAuthUseCase_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, token, err := env.auth.Register(ctx, "Ann", "Ann@Example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "ann@example.com", user.Email)
	assert.Equal(t, "user", user.Role)
	assert.Empty(t, user.Password)
	assert.True(t, strings.HasPrefix(user.Handle, "@ann_"))

	claims, err := env.jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = env.auth.Register(ctx, "Ann", "ann@example.com", "other")
	assert.True(t, isKind(err, ErrValidation))
	assert.EqualError(t, err, "User already exists")

	_, _, err = env.auth.Register(ctx, "", "x@example.com", "secret")
	assert.EqualError(t, err, "All fields are required")

	_, _, err = env.auth.Login(ctx, "ann@example.com", "wrong")
	assert.True(t, isKind(err, ErrUnauthorized))

	_, _, err = env.auth.Login(ctx, "nobody@example.com", "secret")
	assert.True(t, isKind(err, ErrUnauthorized))

	_, _, err = env.auth.Login(ctx, "", "")
	assert.True(t, isKind(err, ErrValidation))

	loggedIn, _, err := env.auth.Login(ctx, "ANN@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = env.auth.GetUser(ctx, "missing")
	assert.True(t, isKind(err, ErrNotFound))
}

func TestAuthUseCase_EnsureAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	admin, err := env.auth.EnsureAdmin(ctx, "Root", "root@example.com", "rootpw")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	_, _, err = env.auth.Login(ctx, "root@example.com", "rootpw")
	require.NoError(t, err)

	env.register(t, "Bob")
	promoted, err := env.auth.EnsureAdmin(ctx, "Bob", "bob@example.com", "ignored")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, promoted.Role)

	// the existing password still works
	_, _, err = env.auth.Login(ctx, "bob@example.com", "secret")
	assert.NoError(t, err)
	_, _, err = env.auth.Login(ctx, "bob@example.com", "ignored")
	assert.Error(t, err)
}

func TestChannelUseCase_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")

	user, err := env.auth.GetUser(ctx, ann.UserID)
	require.NoError(t, err)
	require.NotNil(t, user.ChannelID)
	assert.Equal(t, channel.ID, *user.ChannelID)
	assert.Equal(t, user.AvatarURL, channel.AvatarURL)

	_, err = env.channel.Create(ctx, ann, entity.ChannelDraft{Name: "Second", Handle: "@second"})
	assert.EqualError(t, err, "User already has a channel")

	bob := env.register(t, "Bob")
	_, err = env.channel.Create(ctx, bob, entity.ChannelDraft{Name: "Clone", Handle: "@anntv"})
	assert.EqualError(t, err, "Handle already taken")

	_, err = env.channel.Update(ctx, bob, channel.ID, entity.ChannelUpdate{Name: strPtr("Stolen")})
	assert.True(t, isKind(err, ErrForbidden))

	_, err = env.channel.Update(ctx, ann, channel.ID, entity.ChannelUpdate{IsVerified: boolPtr(true)})
	assert.True(t, isKind(err, ErrForbidden))

	verified, err := env.channel.Update(ctx, adminActor(), channel.ID, entity.ChannelUpdate{IsVerified: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	updated, err := env.channel.Update(ctx, ann, channel.ID, entity.ChannelUpdate{AvatarURL: strPtr("https://img.example.com/new.png")})
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/new.png", updated.AvatarURL)
	user, err = env.auth.GetUser(ctx, ann.UserID)
	require.NoError(t, err)
	assert.Equal(t, "https://img.example.com/new.png", user.AvatarURL)

	for i := 0; i < 3; i++ {
		env.createVideo(t, ann, channel.ID, fmt.Sprintf("clip%d", i))
	}
	page, err := env.channel.Get(ctx, channel.ID)
	require.NoError(t, err)
	assert.Len(t, page.Videos, 3)

	require.NoError(t, env.channel.Delete(ctx, ann, channel.ID))

	videos, err := env.videos.ListByChannel(ctx, channel.ID, false)
	require.NoError(t, err)
	assert.Empty(t, videos)

	user, err = env.auth.GetUser(ctx, ann.UserID)
	require.NoError(t, err)
	assert.Nil(t, user.ChannelID)

	_, err = env.channel.Get(ctx, channel.ID)
	assert.True(t, isKind(err, ErrNotFound))
}

func TestVideoUseCase_CreateRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")

	short, err := env.video.Create(ctx, ann, entity.VideoDraft{
		Title: "quick", VideoURL: "v", ThumbnailURL: "t", ChannelID: channel.ID, Duration: "0:45",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VideoTypeShort, short.Type)
	assert.True(t, short.IsPublished)
	require.NotNil(t, short.Channel)
	assert.Equal(t, channel.ID, short.Channel.ID)

	event := env.events.wait(t)
	assert.Equal(t, queue.EventVideoPublished, event.Type)
	assert.Equal(t, channel.ID, event.ChannelID)
	assert.Equal(t, short.ID, event.VideoID)

	live, err := env.video.Create(ctx, ann, entity.VideoDraft{
		Title: "stream", VideoURL: "v", ThumbnailURL: "t", ChannelID: channel.ID, Duration: "0:30", Type: entity.VideoTypeLive,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VideoTypeLive, live.Type)
	assert.True(t, live.IsLive)
	env.events.wait(t)

	long, err := env.video.Create(ctx, ann, entity.VideoDraft{
		Title: "essay", VideoURL: "v", ThumbnailURL: "t", ChannelID: channel.ID, Duration: "12:00", IsPublished: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.VideoTypeVideo, long.Type)
	assert.False(t, long.IsPublished)

	_, err = env.video.Create(ctx, ann, entity.VideoDraft{Title: "x", ChannelID: channel.ID})
	assert.True(t, isKind(err, ErrValidation))

	_, err = env.video.Create(ctx, ann, entity.VideoDraft{Title: "x", VideoURL: "v", ThumbnailURL: "t", ChannelID: "missing"})
	assert.True(t, isKind(err, ErrNotFound))

	bob := env.register(t, "Bob")
	_, err = env.video.Create(ctx, bob, entity.VideoDraft{Title: "x", VideoURL: "v", ThumbnailURL: "t", ChannelID: channel.ID})
	assert.True(t, isKind(err, ErrForbidden))

	_, err = env.video.Create(ctx, ann, entity.VideoDraft{Title: "x", VideoURL: "v", ThumbnailURL: "t", ChannelID: channel.ID, Type: "podcast"})
	assert.True(t, isKind(err, ErrValidation))
}

func TestVideoUseCase_UpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	video := env.createVideo(t, ann, channel.ID, "intro")
	bob := env.register(t, "Bob")

	_, err := env.video.Update(ctx, bob, video.ID, entity.VideoUpdate{Title: strPtr("hijacked")})
	assert.True(t, isKind(err, ErrForbidden))

	_, err = env.video.Update(ctx, ann, video.ID, entity.VideoUpdate{Title: strPtr("  ")})
	assert.True(t, isKind(err, ErrValidation))

	updated, err := env.video.Update(ctx, ann, video.ID, entity.VideoUpdate{
		Title: strPtr("intro v2"),
		Tags:  &[]string{"go", "web"},
	})
	require.NoError(t, err)
	assert.Equal(t, "intro v2", updated.Title)
	assert.Equal(t, []string{"go", "web"}, updated.Tags)

	assert.True(t, isKind(env.video.Delete(ctx, bob, video.ID), ErrForbidden))
	require.NoError(t, env.video.Delete(ctx, adminActor(), video.ID))

	_, err = env.video.Get(ctx, video.ID)
	assert.True(t, isKind(err, ErrNotFound))
}

func TestVideoUseCase_LikeTwiceRestoresState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	video := env.createVideo(t, ann, channel.ID, "intro")
	env.events.wait(t)

	bob := env.register(t, "Bob")
	liked, err := env.video.Like(ctx, bob, video.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)
	assert.Equal(t, int64(1), liked.Likes)
	assert.Equal(t, []string{bob.UserID}, liked.LikedBy)

	event := env.events.wait(t)
	assert.Equal(t, queue.EventVideoLiked, event.Type)
	assert.Equal(t, ann.UserID, event.RecipientID)

	unliked, err := env.video.Like(ctx, bob, video.ID)
	require.NoError(t, err)
	assert.False(t, unliked.Liked)
	assert.Equal(t, int64(0), unliked.Likes)
	assert.Empty(t, unliked.LikedBy)

	_, err = env.video.Like(ctx, bob, "missing")
	assert.True(t, isKind(err, ErrNotFound))

	dislikes, err := env.video.Dislike(ctx, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), dislikes)
}

func TestVideoUseCase_ViewRecordsHistory(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	first := env.createVideo(t, ann, channel.ID, "first")
	second := env.createVideo(t, ann, channel.ID, "second")

	views, err := env.video.View(ctx, entity.Actor{}, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), views)
	views, err = env.video.View(ctx, entity.Actor{}, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), views)

	bob := env.register(t, "Bob")
	views, err = env.video.View(ctx, bob, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), views)
	time.Sleep(5 * time.Millisecond)
	_, err = env.video.View(ctx, bob, second.ID)
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	views, err = env.video.View(ctx, bob, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), views)

	entries, err := env.hist.List(ctx, bob, bob.UserID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].Video.ID)
	assert.Equal(t, second.ID, entries[1].Video.ID)

	_, err = env.hist.List(ctx, ann, bob.UserID)
	assert.True(t, isKind(err, ErrForbidden))

	require.NoError(t, env.hist.Remove(ctx, bob, bob.UserID, second.ID))
	entries, err = env.hist.List(ctx, adminActor(), bob.UserID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, env.hist.Clear(ctx, bob, bob.UserID))
	entries, err = env.hist.List(ctx, bob, bob.UserID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = env.video.View(ctx, bob, "missing")
	assert.True(t, isKind(err, ErrNotFound))
}

func TestVideoUseCase_SaveAndReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	video := env.createVideo(t, ann, channel.ID, "intro")
	bob := env.register(t, "Bob")

	saved, err := env.video.ToggleSave(ctx, bob, video.ID)
	require.NoError(t, err)
	assert.True(t, saved)

	list, err := env.video.Saved(ctx, bob, bob.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, video.ID, list[0].ID)

	_, err = env.video.Saved(ctx, ann, bob.UserID)
	assert.True(t, isKind(err, ErrForbidden))

	saved, err = env.video.ToggleSave(ctx, bob, video.ID)
	require.NoError(t, err)
	assert.False(t, saved)

	require.NoError(t, env.video.Report(ctx, bob, video.ID))
	require.NoError(t, env.video.Report(ctx, bob, video.ID))

	reported, err := env.admin.Reports(ctx)
	require.NoError(t, err)
	require.Len(t, reported, 1)
	assert.Equal(t, int64(1), reported[0].ReportCount)
}

func TestVideoUseCase_ListPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	for i := 0; i < 5; i++ {
		env.createVideo(t, ann, channel.ID, fmt.Sprintf("clip%d", i))
	}

	page, err := env.video.List(ctx, entity.VideoFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Videos, 2)

	page, err = env.video.List(ctx, entity.VideoFilter{Page: -1, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Videos, 5)

	trending, err := env.video.Trending(ctx)
	require.NoError(t, err)
	assert.Len(t, trending, 5)
}

func TestSearchUseCase_FallsBackToSubstring(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	env.createVideo(t, ann, channel.ID, "Learning Golang")
	hidden, err := env.video.Create(ctx, ann, entity.VideoDraft{
		Title: "golang drafts", VideoURL: "v", ThumbnailURL: "t", ChannelID: channel.ID, IsPublished: boolPtr(false),
	})
	require.NoError(t, err)

	results, err := env.search.Search(ctx, "GOLANG")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Learning Golang", results[0].Title)
	assert.NotEqual(t, hidden.ID, results[0].ID)

	results, err = env.search.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, results)

	suggestions, err := env.search.Suggestions(ctx, "learn")
	require.NoError(t, err)
	assert.Equal(t, []string{"Learning Golang"}, suggestions)
}

func TestCommentUseCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	video := env.createVideo(t, ann, channel.ID, "intro")
	bob := env.register(t, "Bob")

	_, err := env.comment.Create(ctx, bob, video.ID, " ")
	assert.True(t, isKind(err, ErrValidation))
	_, err = env.comment.Create(ctx, bob, "missing", "hi")
	assert.True(t, isKind(err, ErrNotFound))

	comment, err := env.comment.Create(ctx, bob, video.ID, "great video")
	require.NoError(t, err)
	assert.Equal(t, "Bob", comment.Username)

	withReply, err := env.comment.Reply(ctx, ann, comment.ID, "thanks")
	require.NoError(t, err)
	require.Len(t, withReply.Replies, 1)
	assert.Equal(t, "Ann", withReply.Replies[0].Username)

	liked, err := env.comment.Like(ctx, ann, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked.Liked)

	recent, err := env.comment.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "intro", recent[0].VideoTitle)

	assert.True(t, isKind(env.comment.Delete(ctx, ann, comment.ID), ErrForbidden))
	require.NoError(t, env.comment.Delete(ctx, bob, comment.ID))

	comments, err := env.comment.ListByVideo(ctx, video.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCategoryUseCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.category.Create(ctx, "", "🎵")
	assert.True(t, isKind(err, ErrValidation))

	music, err := env.category.Create(ctx, "Music", "🎵")
	require.NoError(t, err)
	_, err = env.category.Create(ctx, "Gaming", "🎮")
	require.NoError(t, err)

	renamed, err := env.category.Update(ctx, music.ID, strPtr("Songs"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Songs", renamed.Name)
	assert.Equal(t, "🎵", renamed.Icon)

	list, err := env.category.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Gaming", list[0].Name)

	require.NoError(t, env.category.Delete(ctx, music.ID))
	assert.True(t, isKind(env.category.Delete(ctx, music.ID), ErrNotFound))
	_, err = env.category.Update(ctx, "missing", strPtr("x"), nil)
	assert.True(t, isKind(err, ErrNotFound))
}

func TestPostUseCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	bob := env.register(t, "Bob")

	_, err := env.post.Create(ctx, bob, channel.ID, "hello", "")
	assert.True(t, isKind(err, ErrForbidden))
	_, err = env.post.Create(ctx, ann, "", "hello", "")
	assert.True(t, isKind(err, ErrValidation))

	post, err := env.post.Create(ctx, ann, channel.ID, "new video tomorrow", "")
	require.NoError(t, err)
	require.NotNil(t, post.Channel)

	liked, err := env.post.Like(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.Likes)

	posts, err := env.post.List(ctx, channel.ID)
	require.NoError(t, err)
	assert.Len(t, posts, 1)

	assert.True(t, isKind(env.post.Delete(ctx, bob, post.ID), ErrForbidden))
	require.NoError(t, env.post.Delete(ctx, ann, post.ID))
}

func TestSubscriptionUseCase_Toggle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	bob := env.register(t, "Bob")

	subscribed, err := env.sub.Toggle(ctx, bob, channel.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	event := env.events.wait(t)
	assert.Equal(t, queue.EventChannelSubscribed, event.Type)
	assert.Equal(t, ann.UserID, event.RecipientID)

	exists, err := env.sub.Check(ctx, bob, bob.UserID, channel.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = env.sub.Check(ctx, ann, bob.UserID, channel.ID)
	assert.True(t, isKind(err, ErrForbidden))

	subs, err := env.sub.List(ctx, bob, bob.UserID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(1), subs[0].Channel.Subscribers)

	subscribed, err = env.sub.Toggle(ctx, bob, channel.ID)
	require.NoError(t, err)
	assert.False(t, subscribed)

	_, err = env.sub.Toggle(ctx, bob, "missing")
	assert.True(t, isKind(err, ErrNotFound))
}

func TestPlaylistUseCase_Privacy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	first := env.createVideo(t, ann, channel.ID, "first")
	second := env.createVideo(t, ann, channel.ID, "second")
	bob := env.register(t, "Bob")

	_, err := env.playlist.Create(ctx, ann, entity.PlaylistDraft{Title: "x", Privacy: "secret"})
	assert.True(t, isKind(err, ErrValidation))

	private, err := env.playlist.Create(ctx, ann, entity.PlaylistDraft{
		Title: "mine", Privacy: entity.PrivacyPrivate, VideoID: first.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ThumbnailURL, private.ThumbnailURL)

	public, err := env.playlist.Create(ctx, ann, entity.PlaylistDraft{Title: "shared"})
	require.NoError(t, err)
	assert.Equal(t, entity.PrivacyPublic, public.Privacy)

	_, err = env.playlist.Get(ctx, bob, private.ID)
	assert.True(t, isKind(err, ErrNotFound))
	_, err = env.playlist.Get(ctx, entity.Actor{}, private.ID)
	assert.True(t, isKind(err, ErrNotFound))

	withSecond, err := env.playlist.AddVideo(ctx, ann, private.ID, second.ID)
	require.NoError(t, err)
	require.Len(t, withSecond.Videos, 2)
	assert.Equal(t, first.ID, withSecond.Videos[0].ID)
	assert.Equal(t, second.ID, withSecond.Videos[1].ID)

	again, err := env.playlist.AddVideo(ctx, ann, private.ID, second.ID)
	require.NoError(t, err)
	assert.Len(t, again.Videos, 2)

	_, err = env.playlist.AddVideo(ctx, bob, public.ID, first.ID)
	assert.True(t, isKind(err, ErrForbidden))

	visible, err := env.playlist.ListByUser(ctx, bob, ann.UserID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, public.ID, visible[0].ID)

	all, err := env.playlist.ListByUser(ctx, ann, ann.UserID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	removed, err := env.playlist.RemoveVideo(ctx, ann, private.ID, first.ID)
	require.NoError(t, err)
	require.Len(t, removed.Videos, 1)

	require.NoError(t, env.playlist.Delete(ctx, adminActor(), private.ID))
	_, err = env.playlist.Get(ctx, ann, private.ID)
	assert.True(t, isKind(err, ErrNotFound))
}

func TestAdminUseCase_Stats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ann := env.register(t, "Ann")
	channel := env.createChannel(t, ann, "@anntv")
	video := env.createVideo(t, ann, channel.ID, "intro")
	_, err := env.video.View(ctx, entity.Actor{}, video.ID)
	require.NoError(t, err)

	stats, err := env.admin.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalVideos)
	assert.Equal(t, int64(1), stats.TotalChannels)
	assert.Equal(t, int64(1), stats.TotalViews)
	assert.Len(t, stats.RecentVideos, 1)
	assert.Len(t, stats.TopChannels, 1)

	users, err := env.admin.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].Password)
}

type memoryStorage struct {
	key  string
	body []byte
}

func (m *memoryStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	body, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	m.key, m.body = key, body
	return "https://media.example.com/" + key, nil
}

func TestUploadUseCase(t *testing.T) {
	storage := &memoryStorage{}
	uc := NewUploadUseCase(storage, 1<<20, logger.New())
	ctx := context.Background()
	actor := entity.Actor{UserID: "u1"}

	url, err := uc.Upload(ctx, actor, "Clip.MP4", "video/mp4", 5, bytes.NewReader([]byte("hello")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(storage.key, "uploads/u1/"))
	assert.True(t, strings.HasSuffix(storage.key, ".mp4"))
	assert.Equal(t, "https://media.example.com/"+storage.key, url)
	assert.Equal(t, []byte("hello"), storage.body)

	_, err = uc.Upload(ctx, actor, "big.mp4", "video/mp4", 2<<20, bytes.NewReader(nil))
	assert.True(t, isKind(err, ErrValidation))

	_, err = NewUploadUseCase(nil, 0, logger.New()).Upload(ctx, actor, "a.png", "", 1, bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestNotificationUseCase_NoRedis(t *testing.T) {
	uc := NewNotificationUseCase(nil, logger.New())
	list, err := uc.List(context.Background(), entity.Actor{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
