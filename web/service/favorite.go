package service

import (
	"picturestream/database"
	"picturestream/database/model"
	"picturestream/logger"
)

type FavoriteService struct{}

// Add marks pictureId as a favorite of userId. The composite unique index on
// (user_id, picture_id) plus FirstOrCreate makes repeat favoriting
// idempotent instead of accumulating rows.
func (s *FavoriteService) Add(userId int, pictureId int) error {
	favorite := &model.Favorite{}
	err := database.GetDB().
		Where(model.Favorite{UserId: userId, PictureId: pictureId}).
		Assign(model.Favorite{IsFavorite: true}).
		FirstOrCreate(favorite).
		Error
	if err != nil {
		logger.Warning("add favorite err:", err)
	}
	return err
}

// IsFavorite reports whether userId has favorited pictureId.
func (s *FavoriteService) IsFavorite(userId int, pictureId int) (bool, error) {
	var count int64
	err := database.GetDB().Model(&model.Favorite{}).
		Where("user_id = ? AND picture_id = ? AND is_favorite = ?", userId, pictureId, true).
		Count(&count).
		Error
	return count > 0, err
}
