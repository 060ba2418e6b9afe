package cli

import (
	"fmt"
	"strings"

	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/models"
)

type CompletedCmd struct {
	List    CompletedListCmd    `cmd:"" help:"List completed concepts."`
	Restore CompletedRestoreCmd `cmd:"" help:"Move a completed concept back to the active list."`
	Delete  CompletedDeleteCmd  `cmd:"" help:"Permanently delete a completed concept."`
}

func resolveCompleted(subject *models.Subject, name string) (*models.CompletedConcept, error) {
	folded := strings.ToLower(strings.TrimSpace(name))
	for i := range subject.CompletedConcepts {
		if strings.ToLower(subject.CompletedConcepts[i].Name) == folded {
			return &subject.CompletedConcepts[i], nil
		}
	}
	return nil, apperrors.NewValidation("concept", "no completed concept named %q in %s", name, subject.Name)
}

type CompletedListCmd struct {
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *CompletedListCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}

	if len(subject.CompletedConcepts) == 0 {
		fmt.Printf("No completed concepts in %s.\n", subject.Name)
		return nil
	}

	fmt.Printf("Completed concepts in %s:\n\n", subject.Name)
	for _, completed := range subject.CompletedConcepts {
		fmt.Printf("%-28s completed %s\n", completed.Name, completed.CompletedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

type CompletedRestoreCmd struct {
	Name    string `arg:"" help:"Completed concept name."`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *CompletedRestoreCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	completed, err := resolveCompleted(subject, c.Name)
	if err != nil {
		return err
	}

	if err := ReportPersistence(t.RestoreConcept(subject.ID, completed.ID)); err != nil {
		return err
	}

	fmt.Printf("Restored concept: %s\n", c.Name)
	return nil
}

type CompletedDeleteCmd struct {
	Name    string `arg:"" help:"Completed concept name to delete permanently."`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *CompletedDeleteCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	completed, err := resolveCompleted(subject, c.Name)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ReportPersistence(t.DeleteCompleted(subject.ID, completed.ID)); err != nil {
		return err
	}

	fmt.Printf("Permanently deleted completed concept: %s\n", c.Name)
	return nil
}
