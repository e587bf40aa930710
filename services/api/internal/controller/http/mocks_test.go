package http

import (
	"context"
	"io"

	"opftube/services/api/internal/entity"
	"opftube/services/api/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	args := m.Called(name, email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	args := m.Called(email, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*entity.User), args.String(1), args.Error(2)
}

func (m *MockAuthUseCase) GetUser(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockAuthUseCase) EnsureAdmin(ctx context.Context, name, email, password string) (*entity.User, error) {
	args := m.Called(name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

var _ usecase.AuthUseCase = (*MockAuthUseCase)(nil)

type MockVideoUseCase struct {
	mock.Mock
}

func (m *MockVideoUseCase) List(ctx context.Context, filter entity.VideoFilter) (*entity.VideoPage, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.VideoPage), args.Error(1)
}

func (m *MockVideoUseCase) Trending(ctx context.Context) ([]*entity.Video, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) Get(ctx context.Context, id string) (*entity.Video, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) Create(ctx context.Context, actor entity.Actor, draft entity.VideoDraft) (*entity.Video, error) {
	args := m.Called(actor, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) Update(ctx context.Context, actor entity.Actor, id string, update entity.VideoUpdate) (*entity.Video, error) {
	args := m.Called(actor, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockVideoUseCase) Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error) {
	args := m.Called(actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LikeResult), args.Error(1)
}

func (m *MockVideoUseCase) Dislike(ctx context.Context, id string) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoUseCase) View(ctx context.Context, actor entity.Actor, id string) (int64, error) {
	args := m.Called(actor, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVideoUseCase) ToggleSave(ctx context.Context, actor entity.Actor, id string) (bool, error) {
	args := m.Called(actor, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockVideoUseCase) Saved(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Video, error) {
	args := m.Called(actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockVideoUseCase) Report(ctx context.Context, actor entity.Actor, id string) error {
	return m.Called(actor, id).Error(0)
}

var _ usecase.VideoUseCase = (*MockVideoUseCase)(nil)

type MockSubscriptionUseCase struct {
	mock.Mock
}

func (m *MockSubscriptionUseCase) Toggle(ctx context.Context, actor entity.Actor, channelID string) (bool, error) {
	args := m.Called(actor, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionUseCase) Check(ctx context.Context, actor entity.Actor, userID, channelID string) (bool, error) {
	args := m.Called(actor, userID, channelID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionUseCase) List(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Subscription, error) {
	args := m.Called(actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subscription), args.Error(1)
}

var _ usecase.SubscriptionUseCase = (*MockSubscriptionUseCase)(nil)

type MockUploadUseCase struct {
	mock.Mock
}

func (m *MockUploadUseCase) Upload(ctx context.Context, actor entity.Actor, filename, contentType string, size int64, file io.Reader) (string, error) {
	args := m.Called(actor, filename, size)
	return args.String(0), args.Error(1)
}

var _ usecase.UploadUseCase = (*MockUploadUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// withActor stands in for the auth middleware.
func withActor(userID, role string, handler gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("user_role", role)
		handler(c)
	}
}

type MockChannelUseCase struct {
	mock.Mock
}

func (m *MockChannelUseCase) List(ctx context.Context) ([]*entity.Channel, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Channel), args.Error(1)
}

func (m *MockChannelUseCase) Get(ctx context.Context, id string) (*entity.ChannelPage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChannelPage), args.Error(1)
}

func (m *MockChannelUseCase) Create(ctx context.Context, actor entity.Actor, draft entity.ChannelDraft) (*entity.Channel, error) {
	args := m.Called(actor, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Channel), args.Error(1)
}

func (m *MockChannelUseCase) Update(ctx context.Context, actor entity.Actor, id string, update entity.ChannelUpdate) (*entity.Channel, error) {
	args := m.Called(actor, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Channel), args.Error(1)
}

func (m *MockChannelUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	return m.Called(actor, id).Error(0)
}

var _ usecase.ChannelUseCase = (*MockChannelUseCase)(nil)

type MockCommentUseCase struct {
	mock.Mock
}

func (m *MockCommentUseCase) ListRecent(ctx context.Context) ([]*entity.Comment, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) ListByVideo(ctx context.Context, videoID string) ([]*entity.Comment, error) {
	args := m.Called(videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) Create(ctx context.Context, actor entity.Actor, videoID, text string) (*entity.Comment, error) {
	args := m.Called(actor, videoID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

func (m *MockCommentUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockCommentUseCase) Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error) {
	args := m.Called(actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LikeResult), args.Error(1)
}

func (m *MockCommentUseCase) Reply(ctx context.Context, actor entity.Actor, id, text string) (*entity.Comment, error) {
	args := m.Called(actor, id, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Comment), args.Error(1)
}

var _ usecase.CommentUseCase = (*MockCommentUseCase)(nil)

type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) List(ctx context.Context, channelID string) ([]*entity.Post, error) {
	args := m.Called(channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) Create(ctx context.Context, actor entity.Actor, channelID, content, imageURL string) (*entity.Post, error) {
	args := m.Called(actor, channelID, content, imageURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	return m.Called(actor, id).Error(0)
}

func (m *MockPostUseCase) Like(ctx context.Context, actor entity.Actor, id string) (*entity.LikeResult, error) {
	args := m.Called(actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LikeResult), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

type MockPlaylistUseCase struct {
	mock.Mock
}

func (m *MockPlaylistUseCase) ListByUser(ctx context.Context, actor entity.Actor, userID string) ([]*entity.Playlist, error) {
	args := m.Called(actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*entity.Playlist, error) {
	args := m.Called(actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) Create(ctx context.Context, actor entity.Actor, draft entity.PlaylistDraft) (*entity.Playlist, error) {
	args := m.Called(actor, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) AddVideo(ctx context.Context, actor entity.Actor, id, videoID string) (*entity.Playlist, error) {
	args := m.Called(actor, id, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) RemoveVideo(ctx context.Context, actor entity.Actor, id, videoID string) (*entity.Playlist, error) {
	args := m.Called(actor, id, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Playlist), args.Error(1)
}

func (m *MockPlaylistUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	return m.Called(actor, id).Error(0)
}

var _ usecase.PlaylistUseCase = (*MockPlaylistUseCase)(nil)

type MockCategoryUseCase struct {
	mock.Mock
}

func (m *MockCategoryUseCase) List(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryUseCase) Create(ctx context.Context, name, icon string) (*entity.Category, error) {
	args := m.Called(name, icon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryUseCase) Update(ctx context.Context, id string, name, icon *string) (*entity.Category, error) {
	args := m.Called(id, name, icon)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryUseCase) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

var _ usecase.CategoryUseCase = (*MockCategoryUseCase)(nil)

type MockHistoryUseCase struct {
	mock.Mock
}

func (m *MockHistoryUseCase) List(ctx context.Context, actor entity.Actor, userID string) ([]*entity.HistoryEntry, error) {
	args := m.Called(actor, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.HistoryEntry), args.Error(1)
}

func (m *MockHistoryUseCase) Clear(ctx context.Context, actor entity.Actor, userID string) error {
	return m.Called(actor, userID).Error(0)
}

func (m *MockHistoryUseCase) Remove(ctx context.Context, actor entity.Actor, userID, videoID string) error {
	return m.Called(actor, userID, videoID).Error(0)
}

var _ usecase.HistoryUseCase = (*MockHistoryUseCase)(nil)

type MockAdminUseCase struct {
	mock.Mock
}

func (m *MockAdminUseCase) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DashboardStats), args.Error(1)
}

func (m *MockAdminUseCase) Videos(ctx context.Context) ([]*entity.Video, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

func (m *MockAdminUseCase) Channels(ctx context.Context) ([]*entity.Channel, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Channel), args.Error(1)
}

func (m *MockAdminUseCase) Users(ctx context.Context) ([]*entity.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockAdminUseCase) Reports(ctx context.Context) ([]*entity.Video, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Video), args.Error(1)
}

var _ usecase.AdminUseCase = (*MockAdminUseCase)(nil)
