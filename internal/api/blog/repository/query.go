package blogRepository

const (
	queryCreateBlog = `
		INSERT INTO blogs (
			id,
			slug,
			title,
			content,
			cover_image,
			author,
			status,
			is_published,
			created_at,
			updated_at
		) VALUES (
			:id,
			:slug,
			:title,
			:content,
			:cover_image,
			:author,
			:status,
			:is_published,
			:created_at,
			:updated_at
		)
	`

	queryGetBlogByID = `
		SELECT
			id,
			slug,
			title,
			content,
			cover_image,
			author,
			status,
			is_published,
			published_at,
			approved_by,
			approved_at,
			created_at,
			updated_at
		FROM blogs
		WHERE id = :id
	`

	queryListBlogs = `
		SELECT
			id,
			slug,
			title,
			content,
			cover_image,
			author,
			status,
			is_published,
			published_at,
			approved_by,
			approved_at,
			created_at,
			updated_at
		FROM blogs
		WHERE (:status = '' OR status = :status)
		  AND (:author = '' OR author = :author)
		  AND (:search = '' OR title ILIKE '%' || :search || '%' OR content ILIKE '%' || :search || '%')
		  AND (NOT :published_only OR (status = 'approved' AND is_published))
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountBlogs = `
		SELECT COUNT(*)
		FROM blogs
		WHERE (:status = '' OR status = :status)
		  AND (:author = '' OR author = :author)
		  AND (:search = '' OR title ILIKE '%' || :search || '%' OR content ILIKE '%' || :search || '%')
		  AND (NOT :published_only OR (status = 'approved' AND is_published))
	`

	queryStatusCounts = `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved,
			COUNT(*) FILTER (WHERE status = 'rejected') AS rejected
		FROM blogs
		WHERE (:author = '' OR author = :author)
	`

	queryUpdateBlog = `
		UPDATE blogs
		SET
			slug = :slug,
			title = :title,
			content = :content,
			cover_image = :cover_image,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdateModeration = `
		UPDATE blogs
		SET
			status = :status,
			is_published = :is_published,
			published_at = :published_at,
			approved_by = :approved_by,
			approved_at = :approved_at,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteBlog = `
		DELETE FROM blogs
		WHERE id = :id
	`

	queryCountByMonth = `
		SELECT
			to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
			COUNT(*) AS count
		FROM blogs
		WHERE created_at >= now() - INTERVAL '12 months'
		GROUP BY 1
		ORDER BY 1
	`

	queryCountPublished = `
		SELECT COUNT(*)
		FROM blogs
		WHERE status = 'approved' AND is_published
	`

	queryGetReactions = `
		SELECT user_id, kind
		FROM blog_reactions
		WHERE blog_id = :blog_id
	`

	queryGetUserReaction = `
		SELECT kind
		FROM blog_reactions
		WHERE blog_id = :blog_id AND user_id = :user_id
	`

	queryAddReaction = `
		INSERT INTO blog_reactions (blog_id, user_id, kind, created_at)
		VALUES (:blog_id, :user_id, :kind, :created_at)
	`

	queryUpdateReaction = `
		UPDATE blog_reactions
		SET kind = :kind
		WHERE blog_id = :blog_id AND user_id = :user_id
	`

	queryDeleteReaction = `
		DELETE FROM blog_reactions
		WHERE blog_id = :blog_id AND user_id = :user_id
	`
)
