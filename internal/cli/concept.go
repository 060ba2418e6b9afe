package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/studytrack/studytrack/internal/constants"
	apperrors "github.com/studytrack/studytrack/internal/errors"
	"github.com/studytrack/studytrack/internal/images"
	"github.com/studytrack/studytrack/internal/models"
	"github.com/studytrack/studytrack/internal/stats"
	"github.com/studytrack/studytrack/internal/tracker"
)

type ConceptCmd struct {
	Add      ConceptAddCmd      `cmd:"" help:"Add a new concept."`
	Rename   ConceptRenameCmd   `cmd:"" help:"Rename a concept."`
	Delete   ConceptDeleteCmd   `cmd:"" help:"Delete a concept."`
	Status   ConceptStatusCmd   `cmd:"" help:"Set a concept's revision status."`
	Revised  ConceptRevisedCmd  `cmd:"" help:"Record when a concept was last revised."`
	Complete ConceptCompleteCmd `cmd:"" help:"Move a concept to the completed archive."`
	Attach   ConceptAttachCmd   `cmd:"" help:"Attach image files to a concept."`
	Detach   ConceptDetachCmd   `cmd:"" help:"Remove an attached image."`
	List     ConceptListCmd     `cmd:"" help:"List concepts in the selected subject."`
}

// resolveSubject picks the subject named on the command line, falling
// back to the current selection.
func resolveSubject(t *tracker.Tracker, name string) (*models.Subject, error) {
	if name != "" {
		return t.SubjectByName(name)
	}
	subject := t.SelectedSubject()
	if subject == nil {
		return nil, apperrors.NewValidation("subject", "no subject selected; pass --subject or run 'studytrack subject select'")
	}
	return subject, nil
}

func resolveConcept(subject *models.Subject, name string) (*models.Concept, error) {
	folded := strings.ToLower(strings.TrimSpace(name))
	for i := range subject.Concepts {
		if strings.ToLower(subject.Concepts[i].Name) == folded {
			return &subject.Concepts[i], nil
		}
	}
	return nil, apperrors.NewValidation("concept", "no concept named %q in %s", name, subject.Name)
}

type ConceptAddCmd struct {
	Name    string `arg:"" help:"Concept name."`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *ConceptAddCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}

	concept, err := t.AddConcept(subject.ID, c.Name)
	if err := ReportPersistence(err); err != nil {
		return err
	}

	fmt.Printf("Added concept %q to %s\n", concept.Name, subject.Name)
	return nil
}

type ConceptRenameCmd struct {
	Name    string `arg:"" help:"Current concept name."`
	NewName string `arg:"" help:"New concept name."`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *ConceptRenameCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	concept, err := resolveConcept(subject, c.Name)
	if err != nil {
		return err
	}

	if err := ReportPersistence(t.RenameConcept(subject.ID, concept.ID, c.NewName)); err != nil {
		return err
	}

	fmt.Printf("Renamed concept %q to %q\n", c.Name, c.NewName)
	return nil
}

type ConceptDeleteCmd struct {
	Name    string `arg:"" help:"Concept name to delete."`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *ConceptDeleteCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	concept, err := resolveConcept(subject, c.Name)
	if err != nil {
		return err
	}

	if err := ReportPersistence(t.DeleteConcept(subject.ID, concept.ID)); err != nil {
		return err
	}

	fmt.Printf("Deleted concept: %s\n", c.Name)
	return nil
}

type ConceptStatusCmd struct {
	Name    string `arg:"" help:"Concept name."`
	Status  string `arg:"" enum:"not-started,learning,need-revision,confident" help:"New status."`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *ConceptStatusCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	concept, err := resolveConcept(subject, c.Name)
	if err != nil {
		return err
	}

	if err := ReportPersistence(t.SetStatus(subject.ID, concept.ID, models.Status(c.Status))); err != nil {
		return err
	}

	fmt.Printf("Set %q to %s\n", c.Name, c.Status)
	return nil
}

type ConceptRevisedCmd struct {
	Name    string `arg:"" help:"Concept name."`
	Date    string `help:"Revision date in YYYY-MM-DD format (default: today)." default:""`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *ConceptRevisedCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	concept, err := resolveConcept(subject, c.Name)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}

	if err := ReportPersistence(t.SetLastRevised(subject.ID, concept.ID, date)); err != nil {
		return err
	}

	fmt.Printf("Marked %q as revised on %s\n", c.Name, date)
	return nil
}

type ConceptCompleteCmd struct {
	Name    string `arg:"" help:"Concept name to complete."`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *ConceptCompleteCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	concept, err := resolveConcept(subject, c.Name)
	if err != nil {
		return err
	}

	if err := ReportPersistence(t.CompleteConcept(subject.ID, concept.ID)); err != nil {
		return err
	}

	fmt.Printf("Completed %q. Bring it back with 'studytrack completed restore'.\n", c.Name)
	return nil
}

type ConceptAttachCmd struct {
	Name    string   `arg:"" help:"Concept name."`
	Files   []string `arg:"" type:"existingfile" help:"Image files to attach (max 2MB each)."`
	Subject string   `help:"Subject name (defaults to the selected subject)."`
}

func (c *ConceptAttachCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	concept, err := resolveConcept(subject, c.Name)
	if err != nil {
		return err
	}

	// The whole selection is encoded before anything is stored, so one
	// bad file aborts the batch without a partial write.
	attachments, err := images.EncodeAll(c.Files, time.Now())
	if err != nil {
		return err
	}

	if err := ReportPersistence(t.AttachImages(subject.ID, concept.ID, attachments)); err != nil {
		return err
	}

	fmt.Printf("Attached %d image(s) to %q\n", len(attachments), c.Name)
	return nil
}

type ConceptDetachCmd struct {
	Name    string `arg:"" help:"Concept name."`
	Index   int    `arg:"" help:"Attachment position, as shown by 'concept list --images'."`
	Subject string `help:"Subject name (defaults to the selected subject)."`
}

func (c *ConceptDetachCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}
	concept, err := resolveConcept(subject, c.Name)
	if err != nil {
		return err
	}

	if err := ReportPersistence(t.DetachImage(subject.ID, concept.ID, c.Index)); err != nil {
		return err
	}

	fmt.Printf("Removed attachment %d from %q\n", c.Index, c.Name)
	return nil
}

type ConceptListCmd struct {
	Subject string `help:"Subject name (defaults to the selected subject)."`
	Filter  string `help:"Filter by status." enum:"all,not-started,learning,need-revision,confident" default:"all"`
	Sort    string `help:"Sort order." enum:"name-asc,name-desc,status,date-desc,date-asc" default:"name-asc"`
	Images  bool   `help:"Show attachment names."`
}

func (c *ConceptListCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := resolveSubject(t, c.Subject)
	if err != nil {
		return err
	}

	concepts := stats.FilterByStatus(subject.Concepts, c.Filter)
	concepts = stats.SortConcepts(concepts, constants.SortKey(c.Sort))

	if len(concepts) == 0 {
		fmt.Printf("No concepts in %s", subject.Name)
		if c.Filter != constants.FilterAll {
			fmt.Printf(" with status %s", c.Filter)
		}
		fmt.Println(".")
		return nil
	}

	fmt.Printf("Concepts in %s:\n\n", subject.Name)
	for _, concept := range concepts {
		revised := "never"
		if concept.LastRevised != "" {
			revised = concept.LastRevised
		}
		fmt.Printf("%-28s %-14s revised: %s\n", concept.Name, concept.Status, revised)
		if c.Images {
			for i, img := range concept.Images {
				fmt.Printf("    [%d] %s (added %s)\n", i, img.Name, img.AddedAt.Format(constants.DateFormat))
			}
		}
	}

	progress := stats.ComputeProgress(subject.Concepts)
	fmt.Printf("\n%s\n", progress.Summary())
	return nil
}
