package voiceRepository

const (
	queryCreateTurn = `
		INSERT INTO voice_turns (
			id, user_id, transcript, language, intent,
			action, route, response, confidence, entities,
			created_at
		) VALUES (
			:id, :user_id, :transcript, :language, :intent,
			:action, :route, :response, :confidence, :entities,
			:created_at
		)
	`

	queryGetTurnsByUserID = `
		SELECT
			id, user_id, transcript, language, intent,
			action, route, response, confidence, entities,
			created_at
		FROM voice_turns
		WHERE user_id = :user_id
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountTurnsByUserID = `
		SELECT COUNT(*) FROM voice_turns
		WHERE user_id = :user_id
	`

	queryDeleteTurnsByUserID = `
		DELETE FROM voice_turns
		WHERE user_id = :user_id
	`
)
