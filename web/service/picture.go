package service

import (
	"picturestream/database"
	"picturestream/database/model"
	"picturestream/logger"
	"picturestream/web/entity"
)

type PictureService struct{}

// Create inserts the metadata row for an already-stored upload.
func (s *PictureService) Create(title, description, fileName string, userId int) (*model.Picture, error) {
	picture := &model.Picture{
		FileName:    fileName,
		Title:       title,
		Description: description,
		UserId:      userId,
	}

	db := database.GetDB()
	if err := db.Create(picture).Error; err != nil {
		logger.Warning("create picture err:", err)
		return nil, err
	}
	return picture, nil
}

// GetAll returns every picture joined with the owner's username, newest
// first. Id breaks ties for uploads landing in the same instant.
func (s *PictureService) GetAll() ([]*entity.StreamPicture, error) {
	var pictures []*entity.StreamPicture
	err := database.GetDB().Model(&model.Picture{}).
		Select("pictures.*, users.username").
		Joins("JOIN users ON users.id = pictures.user_id").
		Order("pictures.created_at DESC, pictures.id DESC").
		Scan(&pictures).
		Error
	if err != nil {
		return nil, err
	}
	return pictures, nil
}

// GetFavorites returns the pictures the user has favorited, newest first.
func (s *PictureService) GetFavorites(userId int) ([]*entity.StreamPicture, error) {
	var pictures []*entity.StreamPicture
	err := database.GetDB().Model(&model.Picture{}).
		Select("pictures.*, users.username").
		Joins("JOIN users ON users.id = pictures.user_id").
		Joins("JOIN users_pictures_favorites ON users_pictures_favorites.picture_id = pictures.id").
		Where("users_pictures_favorites.user_id = ? AND users_pictures_favorites.is_favorite = ?", userId, true).
		Order("pictures.created_at DESC, pictures.id DESC").
		Scan(&pictures).
		Error
	if err != nil {
		return nil, err
	}
	return pictures, nil
}

// GetFileNames lists every stored file name with a metadata row. Used by the
// orphan sweep job.
func (s *PictureService) GetFileNames() ([]string, error) {
	var fileNames []string
	err := database.GetDB().Model(&model.Picture{}).
		Pluck("file_name", &fileNames).
		Error
	if err != nil {
		return nil, err
	}
	return fileNames, nil
}
