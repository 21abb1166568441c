package subscriptionRepository

const (
	queryCreateSubscription = `
		INSERT INTO subscriptions (
			id,
			name,
			price,
			duration,
			features,
			is_popular,
			description,
			created_at,
			updated_at
		) VALUES (
			:id,
			:name,
			:price,
			:duration,
			:features,
			:is_popular,
			:description,
			:created_at,
			:updated_at
		)
	`

	queryGetSubscriptionByID = `
		SELECT
			id,
			name,
			price,
			duration,
			features,
			is_popular,
			description,
			created_at,
			updated_at
		FROM subscriptions
		WHERE id = :id
	`

	queryListSubscriptions = `
		SELECT
			id,
			name,
			price,
			duration,
			features,
			is_popular,
			description,
			created_at,
			updated_at
		FROM subscriptions
		WHERE (:search = '' OR name ILIKE '%' || :search || '%' OR description ILIKE '%' || :search || '%')
		  AND (:min_price <= 0 OR price >= :min_price)
		  AND (:max_price <= 0 OR price <= :max_price)
		ORDER BY price ASC
		LIMIT :limit OFFSET :offset
	`

	queryCountSubscriptions = `
		SELECT COUNT(*)
		FROM subscriptions
		WHERE (:search = '' OR name ILIKE '%' || :search || '%' OR description ILIKE '%' || :search || '%')
		  AND (:min_price <= 0 OR price >= :min_price)
		  AND (:max_price <= 0 OR price <= :max_price)
	`

	queryUpdateSubscription = `
		UPDATE subscriptions
		SET
			name = :name,
			price = :price,
			duration = :duration,
			features = :features,
			is_popular = :is_popular,
			description = :description,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteSubscription = `
		DELETE FROM subscriptions
		WHERE id = :id
	`

	querySubscriptionTotals = `
		SELECT
			COUNT(*) AS total,
			COALESCE(AVG(price), 0) AS average_price
		FROM subscriptions
	`

	queryMostAssignedPlan = `
		SELECT s.name
		FROM subscriptions s
		JOIN user_subscriptions us ON us.subscription_id = s.id
		GROUP BY s.id, s.name
		ORDER BY COUNT(*) DESC, s.name ASC
		LIMIT 1
	`

	queryGetUserSubscription = `
		SELECT
			id,
			user_id,
			subscription_id,
			assigned_by,
			assigned_at
		FROM user_subscriptions
		WHERE user_id = :user_id
	`

	queryAssignSubscription = `
		INSERT INTO user_subscriptions (
			id,
			user_id,
			subscription_id,
			assigned_by,
			assigned_at
		) VALUES (
			:id,
			:user_id,
			:subscription_id,
			:assigned_by,
			:assigned_at
		)
		ON CONFLICT (user_id) DO UPDATE
		SET
			subscription_id = EXCLUDED.subscription_id,
			assigned_by = EXCLUDED.assigned_by,
			assigned_at = EXCLUDED.assigned_at
	`

	queryCancelSubscription = `
		DELETE FROM user_subscriptions
		WHERE user_id = :user_id
	`
)
