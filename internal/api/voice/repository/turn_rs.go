package voiceRepository

import (
	"FarmHelp/internal/entity"
	contextPkg "FarmHelp/pkg/context"
	"FarmHelp/pkg/nlp"
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type VoiceTurnDB struct {
	ID         sql.NullString  `db:"id"`
	UserID     sql.NullString  `db:"user_id"`
	Transcript sql.NullString  `db:"transcript"`
	Language   sql.NullString  `db:"language"`
	Intent     sql.NullString  `db:"intent"`
	Action     sql.NullString  `db:"action"`
	Route      sql.NullString  `db:"route"`
	Response   sql.NullString  `db:"response"`
	Confidence sql.NullFloat64 `db:"confidence"`
	Entities   sql.NullString  `db:"entities"`
	CreatedAt  sql.NullTime    `db:"created_at"`
}

func (r *turnRepository) CreateTurn(ctx context.Context, turn entity.VoiceTurn) error {
	requestID := contextPkg.GetRequestID(ctx)

	entitiesJSON, err := json.Marshal(turn.Entities)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal turn entities")
		return err
	}

	argsKV := map[string]interface{}{
		"id":         turn.ID,
		"user_id":    turn.UserID,
		"transcript": turn.Transcript,
		"language":   string(turn.Language),
		"intent":     string(turn.Intent),
		"action":     string(turn.Action),
		"route":      turn.Route,
		"response":   turn.Response,
		"confidence": turn.Confidence,
		"entities":   string(entitiesJSON),
		"created_at": turn.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateTurn, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTurn")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating voice turn")
		return err
	}

	return nil
}

func (r *turnRepository) GetTurnsByUserID(ctx context.Context, userID string, limit, offset int) ([]entity.VoiceTurn, int, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id": userID,
		"limit":   limit,
		"offset":  offset,
	}

	query, args, err := sqlx.Named(queryGetTurnsByUserID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTurnsByUserID named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []VoiceTurnDB
	if err := r.q.SelectContext(ctx, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching voice turns")
		return nil, 0, err
	}

	countQuery, countArgs, err := sqlx.Named(queryCountTurnsByUserID, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountTurnsByUserID named query preparation err")
		return nil, 0, err
	}
	countQuery = r.q.Rebind(countQuery)

	var total int
	if err := r.q.QueryRowxContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting voice turns")
		return nil, 0, err
	}

	turns := make([]entity.VoiceTurn, 0, len(rows))
	for _, row := range rows {
		turns = append(turns, row.toEntity())
	}

	return turns, total, nil
}

func (r *turnRepository) DeleteTurnsByUserID(ctx context.Context, userID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryDeleteTurnsByUserID, map[string]interface{}{
		"user_id": userID,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteTurnsByUserID named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when deleting voice turns")
		return err
	}

	return nil
}

func (row VoiceTurnDB) toEntity() entity.VoiceTurn {
	turn := entity.VoiceTurn{
		ID:         row.ID.String,
		UserID:     row.UserID.String,
		Transcript: row.Transcript.String,
		Language:   nlp.Language(row.Language.String),
		Intent:     nlp.Intent(row.Intent.String),
		Action:     nlp.Action(row.Action.String),
		Route:      row.Route.String,
		Response:   row.Response.String,
		Confidence: row.Confidence.Float64,
		CreatedAt:  row.CreatedAt.Time,
	}

	if row.Entities.Valid && row.Entities.String != "" {
		var entities nlp.Entities
		if err := json.Unmarshal([]byte(row.Entities.String), &entities); err == nil {
			turn.Entities = entities
		}
	}

	return turn
}
