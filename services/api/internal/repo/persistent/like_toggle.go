package persistent

import (
	"opftube/services/api/internal/entity"

	"gorm.io/gorm"
)

// toggleLike flips one like inside tx. target is an empty model of the liked
// table (it must carry a likes column) and like is the fully keyed membership
// row. An existing row is removed and the counter drops, floored at 0;
// otherwise the row is inserted and the counter rises.
func toggleLike(tx *gorm.DB, target interface{}, targetID string, like interface{}) (*entity.LikeResult, error) {
	if err := tx.Select("id").Where("id = ?", targetID).First(target).Error; err != nil {
		return nil, translate(err)
	}

	result := &entity.LikeResult{}
	res := tx.Delete(like)
	if res.Error != nil {
		return nil, res.Error
	}

	counter := gorm.Expr("likes + ?", 1)
	if res.RowsAffected > 0 {
		counter = gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")
	} else {
		if err := tx.Create(like).Error; err != nil {
			return nil, err
		}
		result.Liked = true
	}

	if err := tx.Model(target).Where("id = ?", targetID).UpdateColumn("likes", counter).Error; err != nil {
		return nil, err
	}
	if err := tx.Model(target).Where("id = ?", targetID).Pluck("likes", &result.Likes).Error; err != nil {
		return nil, err
	}
	return result, nil
}
