package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
)

func TestConvertToPostDtoCarriesLane(t *testing.T) {
	post := models.Post{
		Content:         "Dedicated flatbed lane open next month",
		LaneOrigin:      "Houston, TX",
		LaneDestination: "Denver, CO",
		Equipment:       "flatbed",
		Author:          models.User{Name: "Maria", Username: "maria_dispatch"},
	}

	dto := convertToPostDto(post)

	require.NotNil(t, dto.Lane)
	assert.Equal(t, "Houston, TX", dto.Lane.Origin)
	assert.Equal(t, "Denver, CO", dto.Lane.Destination)
	assert.Equal(t, "flatbed", dto.Lane.Equipment)
	assert.Equal(t, "maria_dispatch", dto.Author.Username)
}

func TestConvertToPostDtoOmitsEmptyLane(t *testing.T) {
	post := models.Post{
		Content: "Welcome aboard to our two new dispatchers",
		Author:  models.User{Username: "fleet_ops"},
	}

	dto := convertToPostDto(post)

	assert.Nil(t, dto.Lane)
}

func TestConvertToPostDtoRepostLane(t *testing.T) {
	repostID := uint(11)
	post := models.Post{
		Content:  "Boosting this one",
		Author:   models.User{Username: "broker_bob"},
		RepostID: &repostID,
		Repost: &models.Post{
			Content:         "Dry van, weekly",
			LaneOrigin:      "Memphis, TN",
			LaneDestination: "Dallas, TX",
			Author:          models.User{Username: "origin_poster"},
		},
	}

	dto := convertToPostDto(post)

	require.NotNil(t, dto.Repost)
	require.NotNil(t, dto.Repost.Lane)
	assert.Equal(t, "Memphis, TN", dto.Repost.Lane.Origin)
	assert.Nil(t, dto.Lane, "repost wrapper itself has no lane")
}
