package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id,
			full_name,
			email,
			password,
			role,
			is_active,
			created_at,
			updated_at
		) VALUES (
			:id,
			:full_name,
			:email,
			:password,
			:role,
			:is_active,
			:created_at,
			:updated_at
		)
	`

	queryGetByID = `
		SELECT
			id,
			full_name,
			email,
			password,
			role,
			is_active,
			created_at,
			updated_at
		FROM users
		WHERE id = :id
	`

	queryGetByEmail = `
		SELECT
			id,
			full_name,
			email,
			password,
			role,
			is_active,
			created_at,
			updated_at
		FROM users
		WHERE email = :email
	`

	queryListUsers = `
		SELECT
			id,
			full_name,
			email,
			password,
			role,
			is_active,
			created_at,
			updated_at
		FROM users
		WHERE (:role = '' OR role = :role)
		  AND (:search = '' OR full_name ILIKE '%' || :search || '%' OR email ILIKE '%' || :search || '%')
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountUsers = `
		SELECT COUNT(*)
		FROM users
		WHERE (:role = '' OR role = :role)
		  AND (:search = '' OR full_name ILIKE '%' || :search || '%' OR email ILIKE '%' || :search || '%')
	`

	queryUserStatistics = `
		SELECT
			COUNT(*) AS total_users,
			COUNT(*) FILTER (WHERE is_active) AS active_users,
			COUNT(*) FILTER (WHERE created_at >= date_trunc('month', now())) AS new_this_month
		FROM users
	`

	queryUpdateUser = `
		UPDATE users
		SET
			full_name = CASE WHEN :full_name = '' THEN full_name ELSE :full_name END,
			email = CASE WHEN :email = '' THEN email ELSE :email END,
			role = CASE WHEN :role = '' THEN role ELSE :role END,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdatePassword = `
		UPDATE users
		SET
			password = :password,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteUser = `
		DELETE FROM users
		WHERE id = :id
	`
)
