package main

import (
	"errors"
	"fmt"

	"opftube/pkg/logger"
	"opftube/pkg/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type options struct {
	demo  bool
	clear bool
}

var defaultCategories = []models.Category{
	{Name: "All", Icon: "🏠"},
	{Name: "Music", Icon: "🎵"},
	{Name: "Gaming", Icon: "🎮"},
	{Name: "Education", Icon: "📚"},
	{Name: "Entertainment", Icon: "🎬"},
	{Name: "Sports", Icon: "⚽"},
	{Name: "Technology", Icon: "💻"},
	{Name: "News", Icon: "📰"},
	{Name: "Comedy", Icon: "😂"},
	{Name: "Science", Icon: "🔬"},
	{Name: "Travel", Icon: "✈️"},
	{Name: "Food", Icon: "🍔"},
}

const (
	demoEmail    = "demo@opftube.dev"
	demoPassword = "password123"
)

var demoVideos = []struct {
	title     string
	duration  string
	thumbnail string
	category  string
}{
	{"Building a REST API in an afternoon", "18:42", "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=640&h=360&fit=crop", "Technology"},
	{"Ten keyboard shortcuts you will use daily", "7:05", "https://images.unsplash.com/photo-1461749280684-dccba630e2f6?w=640&h=360&fit=crop", "Education"},
	{"Desk setup tour", "0:45", "https://images.unsplash.com/photo-1519389950473-47ba0277781c?w=640&h=360&fit=crop", "Technology"},
}

func run(db *gorm.DB, log *logger.Logger, opts options) error {
	if opts.clear {
		if err := clearContent(db, log); err != nil {
			return err
		}
	}

	categories, err := seedCategories(db, log)
	if err != nil {
		return err
	}

	if opts.demo {
		return seedDemo(db, log, categories)
	}
	return nil
}

// clearContent drops every video and comment together with their join rows.
func clearContent(db *gorm.DB, log *logger.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.CommentLike{},
			&models.CommentReply{},
			&models.Comment{},
			&models.VideoLike{},
			&models.VideoView{},
			&models.VideoReport{},
			&models.WatchHistory{},
			&models.WatchLater{},
			&models.PlaylistVideo{},
			&models.VideoTag{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}
		if err := tx.Exec("DELETE FROM video_categories").Error; err != nil {
			return fmt.Errorf("failed to clear video categories: %w", err)
		}
		result := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Video{})
		if result.Error != nil {
			return fmt.Errorf("failed to clear videos: %w", result.Error)
		}
		log.Info("Cleared %d videos and their comments", result.RowsAffected)
		return nil
	})
}

// seedCategories upserts the default categories by name and returns them keyed by name.
func seedCategories(db *gorm.DB, log *logger.Logger) (map[string]*models.Category, error) {
	byName := make(map[string]*models.Category, len(defaultCategories))

	for _, def := range defaultCategories {
		var category models.Category
		err := db.Where("name = ?", def.Name).First(&category).Error
		switch {
		case err == nil:
			if category.Icon != def.Icon {
				if err := db.Model(&category).Update("icon", def.Icon).Error; err != nil {
					return nil, fmt.Errorf("failed to update category %s: %w", def.Name, err)
				}
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			category = models.Category{Name: def.Name, Icon: def.Icon}
			if err := db.Create(&category).Error; err != nil {
				return nil, fmt.Errorf("failed to create category %s: %w", def.Name, err)
			}
			log.Info("Created category %s %s", category.Icon, category.Name)
		default:
			return nil, fmt.Errorf("failed to load category %s: %w", def.Name, err)
		}
		c := category
		byName[def.Name] = &c
	}

	return byName, nil
}

func seedDemo(db *gorm.DB, log *logger.Logger, categories map[string]*models.Category) error {
	var user models.User
	err := db.Where("email = ?", demoEmail).First(&user).Error
	if err == nil {
		log.Info("Demo user already exists, skipping demo data")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up demo user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		user = models.User{
			Name:      "Demo Creator",
			Email:     demoEmail,
			Password:  string(hashed),
			Handle:    "@democreator",
			AvatarURL: "https://ui-avatars.com/api/?name=Demo+Creator&background=FF0000&color=fff&size=128&bold=true",
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}

		channel := models.Channel{
			Name:        "TechVision",
			Handle:      "@techvision",
			Description: "Tech reviews, tutorials and gadget unboxings.",
			AvatarURL:   user.AvatarURL,
			BannerURL:   "https://images.unsplash.com/photo-1518770660439-4636190af475?w=1200&h=300&fit=crop",
			OwnerID:     user.ID,
		}
		if err := tx.Create(&channel).Error; err != nil {
			return fmt.Errorf("failed to create demo channel: %w", err)
		}
		if err := tx.Model(&user).Update("channel_id", channel.ID).Error; err != nil {
			return fmt.Errorf("failed to link demo channel: %w", err)
		}

		for _, v := range demoVideos {
			videoType := models.VideoTypeVideo
			if v.duration == "0:45" {
				videoType = models.VideoTypeShort
			}
			video := models.Video{
				Title:        v.title,
				Description:  "Sample video created by the seed command.",
				ThumbnailURL: v.thumbnail,
				VideoURL:     "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
				Duration:     v.duration,
				ChannelID:    channel.ID,
				CreatorID:    user.ID,
				Tags:         models.StringList{"demo"},
				IsPublished:  true,
				Type:         videoType,
			}
			if category, ok := categories[v.category]; ok {
				video.Categories = []models.Category{*category}
			}
			if err := tx.Create(&video).Error; err != nil {
				return fmt.Errorf("failed to create video %q: %w", v.title, err)
			}
		}

		log.Info("Created demo user %s with channel %s and %d videos", demoEmail, channel.Handle, len(demoVideos))
		return nil
	})
}
