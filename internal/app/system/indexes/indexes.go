// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. CreateMany is idempotent when the
desired index already exists with the same keys and options, so each
ensure* function can run on every boot. Errors are aggregated so any
problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	ensure := func(name string, fn func(context.Context, *mongo.Database) error) {
		if err := fn(ctx, db); err != nil {
			logger.Error("index setup failed",
				zap.String("collection", name),
				zap.Error(err))
			problems = append(problems, name+": "+err.Error())
		}
	}

	ensure("users", ensureUsers)
	ensure("organizations", ensureOrganizations)
	ensure("assignment_sets", ensureAssignmentSets)
	ensure("charters", ensureCharters)
	ensure("message_logs", ensureMessageLogs)
	ensure("boards", ensureBoards)
	ensure("team_agreements", ensureTeamAgreements)
	ensure("pulse_responses", ensurePulseResponses)
	ensure("user_profiles", ensureUserProfiles)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("idx_users_email_ci").SetUnique(true),
		},
	})
	return err
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("organizations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "access_code", Value: 1}},
			Options: options.Index().SetName("idx_orgs_access_code").
				SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "admin", Value: 1}},
			Options: options.Index().SetName("idx_orgs_admin"),
		},
		{
			Keys:    bson.D{{Key: "members", Value: 1}},
			Options: options.Index().SetName("idx_orgs_members"),
		},
	})
	return err
}

func ensureAssignmentSets(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("assignment_sets").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "org_id", Value: 1}},
			Options: options.Index().SetName("idx_assignment_sets_org").SetUnique(true),
		},
	})
	return err
}

func ensureCharters(ctx context.Context, db *mongo.Database) error {
	return ensureOrgTeamKey(ctx, db, "charters", "idx_charters_org_team")
}

func ensureMessageLogs(ctx context.Context, db *mongo.Database) error {
	return ensureOrgTeamKey(ctx, db, "message_logs", "idx_message_logs_org_team")
}

func ensureBoards(ctx context.Context, db *mongo.Database) error {
	return ensureOrgTeamKey(ctx, db, "boards", "idx_boards_org_team")
}

func ensureTeamAgreements(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("team_agreements").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "org_id", Value: 1}},
			Options: options.Index().SetName("idx_team_agreements_org").SetUnique(true),
		},
	})
	return err
}

func ensurePulseResponses(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("pulse_responses").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "org_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "week", Value: 1},
			},
			Options: options.Index().SetName("idx_pulse_org_user_week").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "org_id", Value: 1},
				{Key: "week", Value: 1},
			},
			Options: options.Index().SetName("idx_pulse_org_week"),
		},
	})
	return err
}

func ensureUserProfiles(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("user_profiles").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "org_id", Value: 1},
				{Key: "user_id", Value: 1},
			},
			Options: options.Index().SetName("idx_user_profiles_org_user").SetUnique(true),
		},
	})
	return err
}

// ensureOrgTeamKey creates the unique (org_id, team_id) index shared by
// the per-team auxiliary collections. The uniqueness backs the
// find-or-create upsert: two concurrent lazy creates for the same team
// can never produce two documents.
func ensureOrgTeamKey(ctx context.Context, db *mongo.Database, coll, name string) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "org_id", Value: 1},
				{Key: "team_id", Value: 1},
			},
			Options: options.Index().SetName(name).SetUnique(true),
		},
	})
	return err
}
