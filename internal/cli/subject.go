package cli

import (
	"fmt"

	"github.com/studytrack/studytrack/internal/stats"
)

type SubjectCmd struct {
	Add    SubjectAddCmd    `cmd:"" help:"Add a new subject."`
	Rename SubjectRenameCmd `cmd:"" help:"Rename a subject."`
	Delete SubjectDeleteCmd `cmd:"" help:"Delete a subject and all its concepts."`
	Select SubjectSelectCmd `cmd:"" help:"Select the subject to work in."`
	List   SubjectListCmd   `cmd:"" help:"List subjects."`
}

type SubjectAddCmd struct {
	Name  string `arg:"" help:"Subject name."`
	Color string `help:"Display color." default:""`
}

func (c *SubjectAddCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	subject, err := t.AddSubject(c.Name, c.Color)
	if err := ReportPersistence(err); err != nil {
		return err
	}

	fmt.Printf("Added subject: %s\n", subject.Name)
	return nil
}

type SubjectRenameCmd struct {
	Name    string `arg:"" help:"Current subject name."`
	NewName string `arg:"" help:"New subject name."`
}

func (c *SubjectRenameCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	subject, err := t.SubjectByName(c.Name)
	if err != nil {
		return err
	}
	if err := ReportPersistence(t.RenameSubject(subject.ID, c.NewName)); err != nil {
		return err
	}

	fmt.Printf("Renamed subject %q to %q\n", c.Name, c.NewName)
	return nil
}

type SubjectDeleteCmd struct {
	Name string `arg:"" help:"Subject name to delete."`
}

func (c *SubjectDeleteCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	subject, err := t.SubjectByName(c.Name)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	if err := ReportPersistence(t.DeleteSubject(subject.ID)); err != nil {
		return err
	}

	fmt.Printf("Deleted subject: %s\n", c.Name)
	fmt.Println("(All contained concepts were removed. Use 'studytrack backup restore' to undo.)")
	return nil
}

type SubjectSelectCmd struct {
	Name string `arg:"" optional:"" help:"Subject name. Omit to clear the selection."`
}

func (c *SubjectSelectCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if c.Name == "" {
		if err := ReportPersistence(t.SelectSubject("")); err != nil {
			return err
		}
		fmt.Println("Cleared subject selection.")
		return nil
	}

	subject, err := t.SubjectByName(c.Name)
	if err != nil {
		return err
	}
	if err := ReportPersistence(t.SelectSubject(subject.ID)); err != nil {
		return err
	}

	fmt.Printf("Selected subject: %s\n", subject.Name)
	return nil
}

type SubjectListCmd struct{}

func (c *SubjectListCmd) Run(ctx *Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	subjects := t.Subjects()
	if len(subjects) == 0 {
		fmt.Println("No subjects found.")
		return nil
	}

	selectedID := t.Root().SelectedSubjectID
	for _, subject := range subjects {
		marker := " "
		if subject.ID == selectedID {
			marker = "*"
		}
		progress := stats.ComputeProgress(subject.Concepts)
		fmt.Printf("%s %-24s %s\n", marker, subject.Name, progress.Summary())
	}

	return nil
}
