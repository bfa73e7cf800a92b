package controllers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/lib"
	"github.com/williamgparker144-crypto/DispatchLink-sub000/src/models"
	"gorm.io/gorm"
)

// GetFeedPosts returns posts for the authenticated user's feed, including posts from their connections and themselves
func GetFeedPosts(c *fiber.Ctx) error {
	user := c.Locals("user").(models.User)

	var connections []models.Connection
	err := lib.DB.Where("(sender_id = ? OR recipient_id = ?) AND status = ?",
		user.ID, user.ID, models.ConnectionStatusAccepted).
		Find(&connections).Error

	if err != nil {
		lib.Log.Errorw("error fetching connections for feed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching connections",
		})
	}

	// Feed covers the user plus their accepted connections
	connectionIDs := []uint{user.ID}
	for _, conn := range connections {
		connectionIDs = append(connectionIDs, conn.PeerID(user.ID))
	}

	var posts []models.Post
	err = lib.DB.Preload("Author").
		Preload("Likes.User").
		Preload("Comments.User").
		Preload("Repost.Author").
		Where("author_id IN ?", connectionIDs).
		Order("created_at DESC").
		Find(&posts).Error

	if err != nil {
		lib.Log.Errorw("error fetching feed posts", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching posts",
		})
	}

	postDtos := make([]models.PostDto, 0, len(posts))
	for _, post := range posts {
		postDtos = append(postDtos, convertToPostDto(post))
	}

	return c.Status(fiber.StatusOK).JSON(postDtos)
}

// CreatePost creates a new post for the authenticated user
func CreatePost(c *fiber.Ctx) error {
	type CreatePostRequest struct {
		Content         string `json:"content"`
		Image           string `json:"image,omitempty"`
		LaneOrigin      string `json:"laneOrigin,omitempty"`
		LaneDestination string `json:"laneDestination,omitempty"`
		Equipment       string `json:"equipment,omitempty"`
		Repost          *uint  `json:"repost,omitempty"`
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	user := c.Locals("user").(models.User)

	if req.Content == "" && req.Repost == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Post content cannot be empty",
		})
	}

	// A lane needs both endpoints
	if (req.LaneOrigin == "") != (req.LaneDestination == "") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A load lane needs both an origin and a destination",
		})
	}

	var repostID *uint
	if req.Repost != nil && *req.Repost > 0 {
		var existingPost models.Post
		err := lib.DB.First(&existingPost, *req.Repost).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"message": "Post to repost not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Error verifying repost",
			})
		}

		repostID = req.Repost
	}

	newPost := models.Post{
		AuthorID:        user.ID,
		Content:         req.Content,
		Image:           req.Image,
		LaneOrigin:      req.LaneOrigin,
		LaneDestination: req.LaneDestination,
		Equipment:       req.Equipment,
		RepostID:        repostID,
	}

	if err := lib.DB.Create(&newPost).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create post",
		})
	}

	lib.DB.Preload("Author").Preload("Repost.Author").First(&newPost, newPost.ID)

	return c.Status(fiber.StatusCreated).JSON(convertToPostDto(newPost))
}

// DeletePost deletes a post by ID if the authenticated user is the author
func DeletePost(c *fiber.Ctx) error {
	postIDStr := c.Params("id")
	postID, err := strconv.ParseUint(postIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid post ID",
		})
	}

	user := c.Locals("user").(models.User)

	var post models.Post
	err = lib.DB.First(&post, uint(postID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching post",
		})
	}

	if post.AuthorID != user.ID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "You are not authorized to delete this post",
		})
	}

	if err := lib.DB.Delete(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// GetPostByID returns a post by its ID, including populated author and comments
func GetPostByID(c *fiber.Ctx) error {
	postIDStr := c.Params("id")
	postID, err := strconv.ParseUint(postIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid post ID format",
		})
	}

	var post models.Post
	err = lib.DB.Preload("Author").
		Preload("Likes.User").
		Preload("Comments.User").
		Preload("Repost.Author").
		First(&post, uint(postID)).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error loading post data",
		})
	}

	return c.Status(fiber.StatusOK).JSON(convertToPostDto(post))
}

// CreateComment adds a new comment to a post by its ID
func CreateComment(c *fiber.Ctx) error {
	postIDStr := c.Params("id")
	postID, err := strconv.ParseUint(postIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid post ID format",
		})
	}

	type CreateCommentRequest struct {
		Content string `json:"content"`
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Comment content cannot be empty",
		})
	}

	user := c.Locals("user").(models.User)

	var post models.Post
	err = lib.DB.First(&post, uint(postID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching post",
		})
	}

	newComment := models.Comment{
		PostID:  uint(postID),
		UserID:  user.ID,
		Content: req.Content,
	}

	if err := lib.DB.Create(&newComment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to add comment",
		})
	}

	// Notify the author unless they commented on their own post
	if post.AuthorID != user.ID {
		postIDUint := uint(postID)
		newNotification := models.Notification{
			RecipientID:   post.AuthorID,
			Type:          models.NotificationTypeComment,
			RelatedUserID: &user.ID,
			RelatedPostID: &postIDUint,
			Read:          false,
		}

		if err := lib.DB.Create(&newNotification).Error; err != nil {
			lib.Log.Errorw("error creating notification", "error", err)
		}
	}

	err = lib.DB.Preload("Author").
		Preload("Likes.User").
		Preload("Comments.User").
		Preload("Repost.Author").
		First(&post, uint(postID)).Error

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error loading post details",
		})
	}

	return c.Status(fiber.StatusOK).JSON(convertToPostDto(post))
}

// LikePost toggles a like/unlike for a post by the authenticated user
func LikePost(c *fiber.Ctx) error {
	postIDStr := c.Params("id")
	postID, err := strconv.ParseUint(postIDStr, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid post ID format",
		})
	}

	user := c.Locals("user").(models.User)

	var post models.Post
	err = lib.DB.Preload("Likes").First(&post, uint(postID)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error fetching post",
		})
	}

	var existingLike models.Like
	err = lib.DB.Where("post_id = ? AND user_id = ?", uint(postID), user.ID).First(&existingLike).Error

	var shouldCreateNotification bool

	if err == nil {
		// Like exists, remove it (unlike)
		if err := lib.DB.Delete(&existingLike).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to unlike post",
			})
		}
		shouldCreateNotification = false
	} else if errors.Is(err, gorm.ErrRecordNotFound) {
		newLike := models.Like{
			PostID: uint(postID),
			UserID: user.ID,
		}
		if err := lib.DB.Create(&newLike).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Failed to like post",
			})
		}
		shouldCreateNotification = (post.AuthorID != user.ID)
	} else {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error checking like status",
		})
	}

	if shouldCreateNotification {
		postIDUint := uint(postID)
		newNotification := models.Notification{
			RecipientID:   post.AuthorID,
			Type:          models.NotificationTypeLike,
			RelatedUserID: &user.ID,
			RelatedPostID: &postIDUint,
			Read:          false,
		}

		if err := lib.DB.Create(&newNotification).Error; err != nil {
			lib.Log.Errorw("error creating notification", "error", err)
		}
	}

	err = lib.DB.Preload("Author").
		Preload("Likes.User").
		Preload("Comments.User").
		Preload("Repost.Author").
		First(&post, uint(postID)).Error

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Error loading post details",
		})
	}

	return c.Status(fiber.StatusOK).JSON(convertToPostDto(post))
}

// Helper function to convert Post model to PostDto
func convertToPostDto(post models.Post) models.PostDto {
	postDto := models.PostDto{
		ID:        post.ID,
		Author:    post.Author.ToDto(),
		Content:   post.Content,
		Image:     post.Image,
		Lane:      post.Lane(),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}

	for _, like := range post.Likes {
		postDto.Likes = append(postDto.Likes, like.User.ToDto())
	}

	for _, comment := range post.Comments {
		postDto.Comments = append(postDto.Comments, models.CommentDto{
			ID:        comment.ID,
			Content:   comment.Content,
			User:      comment.User.ToDto(),
			CreatedAt: comment.CreatedAt,
		})
	}

	if post.RepostID != nil && post.Repost != nil {
		repostDto := models.PostDto{
			ID:        post.Repost.ID,
			Author:    post.Repost.Author.ToDto(),
			Content:   post.Repost.Content,
			Image:     post.Repost.Image,
			Lane:      post.Repost.Lane(),
			CreatedAt: post.Repost.CreatedAt,
			UpdatedAt: post.Repost.UpdatedAt,
		}
		postDto.Repost = &repostDto
	}

	return postDto
}
