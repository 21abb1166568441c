package blog

import (
	"net/http"

	"github.com/salman-gourmet/bookmyagents/pkg/response"
)

var (
	ErrBlogNotFound     = response.NewError(http.StatusNotFound, "blog not found")
	ErrBlogNotOwned     = response.NewError(http.StatusForbidden, "you are not the author of this blog")
	ErrBlogLocked       = response.NewError(http.StatusConflict, "blog has been moderated and can no longer be edited")
	ErrBlogNotDeletable = response.NewError(http.StatusConflict, "blog cannot be deleted in its current status")
	ErrAlreadyModerated = response.NewError(http.StatusConflict, "blog has already been moderated")
	ErrSlugTaken        = response.NewError(http.StatusConflict, "a blog with a similar title already exists")
	ErrInvalidStatus    = response.NewError(http.StatusBadRequest, "invalid blog status")
	ErrCreateBlog       = response.NewError(http.StatusInternalServerError, "failed to create blog")
	ErrUpdateBlog       = response.NewError(http.StatusInternalServerError, "failed to update blog")
	ErrDeleteBlog       = response.NewError(http.StatusInternalServerError, "failed to delete blog")
	ErrFailedToUpload   = response.NewError(http.StatusInternalServerError, "failed to upload image")
)
