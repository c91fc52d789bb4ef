// Package admin holds operator commands for subjects and role assignments,
// used to bootstrap the first admin before the API is reachable.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shelfwatch/internal/application/admin/dto"
	"shelfwatch/internal/application/admin/usecases"
	"shelfwatch/internal/domain/subject"
	"shelfwatch/internal/infrastructure/config"
	"shelfwatch/internal/infrastructure/database"
	"shelfwatch/internal/infrastructure/repository"
	"shelfwatch/internal/shared/authorization"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/utils"
)

// operator is recorded as granted_by for assignments made from the CLI.
const operator = "cli"

var (
	env          string
	configPath   string
	email        string
	businessName string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin role assignments",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	seed := &cobra.Command{
		Use:   "seed-subject <subject-id>",
		Short: "Create or update a subject row, e.g. before granting it a role",
		Args:  cobra.ExactArgs(1),
		RunE:  runSeedSubject,
	}
	seed.Flags().StringVar(&email, "email", "", "Contact email of the subject")
	seed.Flags().StringVar(&businessName, "business-name", "", "Business name shown in digests")
	_ = seed.MarkFlagRequired("email")

	cmd.AddCommand(
		seed,
		&cobra.Command{
			Use:   "grant <subject-id>",
			Short: "Grant the admin role to a subject",
			Args:  cobra.ExactArgs(1),
			RunE:  runGrant,
		},
		&cobra.Command{
			Use:   "revoke <subject-id>",
			Short: "Revoke the admin role from a subject",
			Args:  cobra.ExactArgs(1),
			RunE:  runRevoke,
		},
	)

	return cmd
}

func initEnv() (logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return logger.WithComponent("admin-cli"), nil
}

func runGrant(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	db := database.Get()
	uc := usecases.NewGrantRoleUseCase(repository.NewRoleRepository(db), repository.NewSubjectRepository(db), log)
	assignment, err := uc.Execute(cmd.Context(), operator, dto.GrantRoleRequest{
		SubjectID: args[0],
		Role:      string(authorization.RoleAdmin),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "granted %s to %s (%s)\n", assignment.Role, assignment.SubjectID, assignment.ID)
	return nil
}

func runRevoke(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	uc := usecases.NewRevokeRoleUseCase(repository.NewRoleRepository(database.Get()), log)
	if err := uc.Execute(cmd.Context(), operator, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "revoked %s from %s\n", authorization.RoleAdmin, args[0])
	return nil
}

type seedSubjectRequest struct {
	SubjectID    string `json:"subject_id" binding:"required,max=64"`
	Email        string `json:"email" binding:"required,email"`
	BusinessName string `json:"business_name" binding:"max=200"`
}

// subjectWriter is the part of the subject repository seeding needs.
type subjectWriter interface {
	Upsert(ctx context.Context, s *subject.Subject) error
}

func seedSubject(ctx context.Context, repo subjectWriter, req seedSubjectRequest) (*subject.Subject, error) {
	req.SubjectID = strings.TrimSpace(req.SubjectID)
	req.Email = strings.TrimSpace(req.Email)
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, err
	}

	subj := &subject.Subject{ID: req.SubjectID, Email: req.Email, BusinessName: req.BusinessName}
	if err := repo.Upsert(ctx, subj); err != nil {
		return nil, err
	}
	return subj, nil
}

func runSeedSubject(cmd *cobra.Command, args []string) error {
	log, err := initEnv()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	subj, err := seedSubject(cmd.Context(), repository.NewSubjectRepository(database.Get()), seedSubjectRequest{
		SubjectID:    args[0],
		Email:        email,
		BusinessName: businessName,
	})
	if err != nil {
		return err
	}

	log.Infow("subject seeded", "subject_id", subj.ID, "operator", operator)
	fmt.Fprintf(cmd.OutOrStdout(), "seeded %s <%s>\n", subj.ID, subj.Email)
	return nil
}
