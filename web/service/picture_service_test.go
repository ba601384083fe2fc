package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStreamOrdering(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	pictureService := PictureService{}

	alice, err := userService.Register("alice", "alice@example.com", "secret1")
	assert.NoError(t, err)

	first, err := pictureService.Create("sunrise", "", "a.jpg", alice.Id)
	assert.NoError(t, err)
	second, err := pictureService.Create("sunset", "evening sky", "b.jpg", alice.Id)
	assert.NoError(t, err)

	pictures, err := pictureService.GetAll()
	assert.NoError(t, err)
	assert.Len(t, pictures, 2)

	// newest first
	assert.Equal(t, second.Id, pictures[0].Id)
	assert.Equal(t, first.Id, pictures[1].Id)
	assert.Equal(t, "sunset", pictures[0].Title)
	assert.Equal(t, "alice", pictures[0].Username)
}

func TestGetFileNames(t *testing.T) {
	setup()
	defer teardown()

	userService := UserService{}
	pictureService := PictureService{}

	alice, err := userService.Register("alice", "alice@example.com", "secret1")
	assert.NoError(t, err)

	_, err = pictureService.Create("one", "", "a.jpg", alice.Id)
	assert.NoError(t, err)
	_, err = pictureService.Create("two", "", "b.jpg", alice.Id)
	assert.NoError(t, err)

	fileNames, err := pictureService.GetFileNames()
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.jpg", "b.jpg"}, fileNames)
}
