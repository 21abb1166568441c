package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlogStatus_CanEdit(t *testing.T) {
	assert.True(t, BlogStatusPending.CanEdit())
	assert.False(t, BlogStatusApproved.CanEdit())
	assert.False(t, BlogStatusRejected.CanEdit())
}

func TestDeletePolicy_Strict(t *testing.T) {
	var policy DeletePolicy

	assert.False(t, policy.CanDelete(BlogStatusPending))
	assert.False(t, policy.CanDelete(BlogStatusApproved))
	assert.True(t, policy.CanDelete(BlogStatusRejected))
}

func TestDeletePolicy_AllowPendingDelete(t *testing.T) {
	policy := DeletePolicy{AllowPendingDelete: true}

	assert.True(t, policy.CanDelete(BlogStatusPending))
	assert.False(t, policy.CanDelete(BlogStatusApproved))
	assert.True(t, policy.CanDelete(BlogStatusRejected))
}

func TestBlogStatus_Badge(t *testing.T) {
	assert.Equal(t, "warning", BlogStatusPending.Badge())
	assert.Equal(t, "success", BlogStatusApproved.Badge())
	assert.Equal(t, "danger", BlogStatusRejected.Badge())
	assert.Equal(t, "secondary", BlogStatus("archived").Badge())
}

func TestBlogStatus_Valid(t *testing.T) {
	assert.True(t, BlogStatusPending.Valid())
	assert.True(t, BlogStatusApproved.Valid())
	assert.True(t, BlogStatusRejected.Valid())
	assert.False(t, BlogStatus("").Valid())
	assert.False(t, BlogStatus("draft").Valid())
}

func TestReactionKind_Opposite(t *testing.T) {
	assert.Equal(t, ReactionDislike, ReactionLike.Opposite())
	assert.Equal(t, ReactionLike, ReactionDislike.Opposite())
}
