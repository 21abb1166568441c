package listingRepository

const (
	queryCreateListing = `
		INSERT INTO listings (
			id,
			title,
			description,
			pictures,
			phone,
			contact_email,
			address,
			website,
			category,
			price,
			city,
			state,
			country,
			latitude,
			longitude,
			agent_id,
			created_at,
			updated_at
		) VALUES (
			:id,
			:title,
			:description,
			:pictures,
			:phone,
			:contact_email,
			:address,
			:website,
			:category,
			:price,
			:city,
			:state,
			:country,
			:latitude,
			:longitude,
			:agent_id,
			:created_at,
			:updated_at
		)
	`

	queryGetListingByID = `
		SELECT
			id,
			title,
			description,
			pictures,
			phone,
			contact_email,
			address,
			website,
			category,
			price,
			city,
			state,
			country,
			latitude,
			longitude,
			agent_id,
			created_at,
			updated_at
		FROM listings
		WHERE id = :id
	`

	queryListListings = `
		SELECT
			id,
			title,
			description,
			pictures,
			phone,
			contact_email,
			address,
			website,
			category,
			price,
			city,
			state,
			country,
			latitude,
			longitude,
			agent_id,
			created_at,
			updated_at
		FROM listings
		WHERE (:category = '' OR category = :category)
		  AND (:city = '' OR city ILIKE :city)
		  AND (:agent_id = '' OR agent_id = :agent_id)
		  AND (:min_price <= 0 OR price >= :min_price)
		  AND (:max_price <= 0 OR price <= :max_price)
		  AND (:search = '' OR title ILIKE '%' || :search || '%' OR description ILIKE '%' || :search || '%')
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountListings = `
		SELECT COUNT(*)
		FROM listings
		WHERE (:category = '' OR category = :category)
		  AND (:city = '' OR city ILIKE :city)
		  AND (:agent_id = '' OR agent_id = :agent_id)
		  AND (:min_price <= 0 OR price >= :min_price)
		  AND (:max_price <= 0 OR price <= :max_price)
		  AND (:search = '' OR title ILIKE '%' || :search || '%' OR description ILIKE '%' || :search || '%')
	`

	// Haversine distance on an earth radius of 6371 km. LEAST clamps rounding
	// noise so acos never sees a value above 1.
	querySearchNearby = `
		SELECT *
		FROM (
			SELECT
				id,
				title,
				description,
				pictures,
				phone,
				contact_email,
				address,
				website,
				category,
				price,
				city,
				state,
				country,
				latitude,
				longitude,
				agent_id,
				created_at,
				updated_at,
				6371 * acos(LEAST(1.0,
					cos(radians(:latitude)) * cos(radians(latitude)) *
					cos(radians(longitude) - radians(:longitude)) +
					sin(radians(:latitude)) * sin(radians(latitude))
				)) AS distance_km
			FROM listings
			WHERE (:category = '' OR category = :category)
			  AND (:search = '' OR title ILIKE '%' || :search || '%' OR description ILIKE '%' || :search || '%')
		) nearby
		WHERE distance_km <= :radius_km
		ORDER BY distance_km ASC
		LIMIT :limit OFFSET :offset
	`

	queryCountNearby = `
		SELECT COUNT(*)
		FROM (
			SELECT
				6371 * acos(LEAST(1.0,
					cos(radians(:latitude)) * cos(radians(latitude)) *
					cos(radians(longitude) - radians(:longitude)) +
					sin(radians(:latitude)) * sin(radians(latitude))
				)) AS distance_km
			FROM listings
			WHERE (:category = '' OR category = :category)
			  AND (:search = '' OR title ILIKE '%' || :search || '%' OR description ILIKE '%' || :search || '%')
		) nearby
		WHERE distance_km <= :radius_km
	`

	queryUpdateListing = `
		UPDATE listings
		SET
			title = :title,
			description = :description,
			pictures = :pictures,
			phone = :phone,
			contact_email = :contact_email,
			address = :address,
			website = :website,
			category = :category,
			price = :price,
			city = :city,
			state = :state,
			country = :country,
			latitude = :latitude,
			longitude = :longitude,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteListing = `
		DELETE FROM listings
		WHERE id = :id
	`

	queryListingTotals = `
		SELECT
			COUNT(*) AS total,
			COALESCE(AVG(price), 0) AS average_price
		FROM listings
		WHERE (:agent_id = '' OR agent_id = :agent_id)
	`

	queryListingsByCategory = `
		SELECT category, COUNT(*) AS count
		FROM listings
		WHERE (:agent_id = '' OR agent_id = :agent_id)
		GROUP BY category
		ORDER BY count DESC
	`
)
