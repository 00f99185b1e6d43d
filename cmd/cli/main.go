// Command nexthire is a terminal front end for the NextHire API: browse and
// filter jobs, and take a job's screening quiz to apply.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"
	"github.com/kelseyhightower/envconfig"
	"github.com/siddharth180703/NextHire/internal/client"
	"github.com/siddharth180703/NextHire/internal/logger"
	"github.com/siddharth180703/NextHire/internal/quiz"
	"github.com/siddharth180703/NextHire/pkg/model"
	"go.uber.org/zap"
)

type cliConfig struct {
	APIURL  string        `envconfig:"NEXTHIRE_API_URL" default:"http://localhost:8000/api/v1"`
	Token   string        `envconfig:"NEXTHIRE_TOKEN"`
	Timeout time.Duration `envconfig:"NEXTHIRE_TIMEOUT" default:"30s"`
	Env     string        `envconfig:"APP_ENV" default:"production"`
}

const usage = `usage: nexthire <command> [flags]

commands:
  login   -email E -password P -role student|recruiter   print a token for NEXTHIRE_TOKEN
  jobs    [-keyword K] [-filter F]                        list jobs; F is a filter card choice
  job     <job-id>                                        show one job
  quiz    <job-id> [-answers 1,0,2]                       take the quiz and apply
  applied                                                 list your applications
`

func main() {
	var cfg cliConfig
	if err := envconfig.Process("", &cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	c := client.NewClient(cfg.APIURL, cfg.Token)
	if err := run(ctx, c, os.Args[1], os.Args[2:], os.Stdin, os.Stdout); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, apiErr.Message)
		} else {
			log.Error("command failed", zap.String("command", os.Args[1]), zap.Error(err))
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string, in io.Reader, out io.Writer) error {
	switch cmd {
	case "login":
		return runLogin(ctx, c, args, out)
	case "jobs":
		return runJobs(ctx, c, args, out)
	case "job":
		return runJob(ctx, c, args, out)
	case "quiz":
		return runQuiz(ctx, c, args, in, out)
	case "applied":
		return runApplied(ctx, c, out)
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runLogin(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", string(model.UserRoleStudent), "student or recruiter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := c.Login(ctx, *email, *password, model.UserRole(*role))
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "logged in as %s (%s)\nexport NEXTHIRE_TOKEN=%s\n", user.Fullname, user.Role, c.Token())
	return nil
}

func runJobs(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	keyword := fs.String("keyword", "", "server-side search over title and description")
	filter := fs.String("filter", "", `filter choice, e.g. "Pune" or "20-30"`)
	if err := fs.Parse(args); err != nil {
		return err
	}

	state := client.NewJobState(c)
	if err := state.Load(ctx, *keyword); err != nil {
		return err
	}
	if *filter != "" {
		state.ApplySelection(*filter)
	}

	jobs := state.Filtered()
	if len(jobs) == 0 {
		fmt.Fprintln(out, "Job not found")
		return nil
	}
	for _, j := range jobs {
		company := ""
		if j.Company != nil {
			company = j.Company.Name
		}
		fmt.Fprintf(out, "%s  %-30s %-20s %-12s %5.1f LPA\n", j.JobID, j.Title, company, j.Location, j.Salary)
	}
	return nil
}

func runJob(ctx context.Context, c *client.Client, args []string, out io.Writer) error {
	jobID, err := jobIDArg(args)
	if err != nil {
		return err
	}
	job, err := c.Job(ctx, jobID)
	if err != nil {
		return err
	}
	printJob(out, job)
	return nil
}

func runQuiz(ctx context.Context, c *client.Client, args []string, in io.Reader, out io.Writer) error {
	jobID, err := jobIDArg(args)
	if err != nil {
		return err
	}
	fs := flag.NewFlagSet("quiz", flag.ContinueOnError)
	answersFlag := fs.String("answers", "", "comma-separated option indexes, one per question")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	me, err := c.Me(ctx)
	if err != nil {
		return err
	}
	state := client.NewJobState(c)
	if err := state.Refresh(ctx, jobID); err != nil {
		return err
	}
	job := state.SingleJob()

	session := quiz.NewSession(job, client.HasApplied(job, me.UserID), c, state)
	if session.State() == quiz.StateApplied {
		fmt.Fprintln(out, "Already Applied")
		return nil
	}
	if err := session.Start(); err != nil {
		return err
	}

	answers, err := collectAnswers(job, *answersFlag, in, out)
	if err != nil {
		return err
	}
	for q, a := range answers {
		if err := session.Select(q, a); err != nil {
			return err
		}
	}

	res, err := session.Submit(ctx)
	if errors.Is(err, quiz.ErrQuizFailed) || errors.Is(err, quiz.ErrIncompleteAnswers) {
		fmt.Fprintf(out, "%d/%d correct. %s\n", res.Correct, len(job.Quiz), err)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d/%d correct. Job applied successfully.\n", res.Correct, len(job.Quiz))
	if res.RefreshErr != nil {
		fmt.Fprintf(out, "could not reload the job: %v\n", res.RefreshErr)
	}
	return nil
}

func runApplied(ctx context.Context, c *client.Client, out io.Writer) error {
	apps, err := c.AppliedJobs(ctx)
	if err != nil {
		return err
	}
	if len(apps) == 0 {
		fmt.Fprintln(out, "You haven't applied any job yet.")
		return nil
	}
	for _, a := range apps {
		title, company := "", ""
		if a.Job != nil {
			title = a.Job.Title
			if a.Job.Company != nil {
				company = a.Job.Company.Name
			}
		}
		fmt.Fprintf(out, "%s  %-30s %-20s %s\n", a.CreatedAt.Format("2006-01-02"), title, company, a.Status)
	}
	return nil
}

func jobIDArg(args []string) (uuid.UUID, error) {
	if len(args) == 0 {
		return uuid.Nil, errors.New("missing job id")
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid job id %q: %w", args[0], err)
	}
	return id, nil
}

func printJob(out io.Writer, job *model.Job) {
	fmt.Fprintf(out, "%s\n%s\n\n", job.Title, job.Description)
	if job.Company != nil {
		fmt.Fprintf(out, "Company:     %s\n", job.Company.Name)
	}
	fmt.Fprintf(out, "Location:    %s\n", job.Location)
	fmt.Fprintf(out, "Type:        %s\n", job.JobType)
	fmt.Fprintf(out, "Experience:  %s yrs\n", job.ExperienceLevel)
	fmt.Fprintf(out, "Salary:      %.1f LPA\n", job.Salary)
	fmt.Fprintf(out, "Positions:   %d\n", job.Position)
	fmt.Fprintf(out, "Applicants:  %d\n", len(job.Applications))
	if len(job.Requirements) > 0 {
		fmt.Fprintf(out, "Requirements: %s\n", strings.Join(job.Requirements, ", "))
	}
}

// collectAnswers parses -answers or prompts for each question on in.
func collectAnswers(job *model.Job, flagValue string, in io.Reader, out io.Writer) ([]int, error) {
	if flagValue != "" {
		parts := strings.Split(flagValue, ",")
		answers := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("invalid answer %q", p)
			}
			answers = append(answers, n)
		}
		return answers, nil
	}

	scanner := bufio.NewScanner(in)
	answers := make([]int, 0, len(job.Quiz))
	for i, q := range job.Quiz {
		fmt.Fprintf(out, "\nQ%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j, opt)
		}
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || n < 0 || n >= len(q.Options) {
			n = math.MinInt
		}
		answers = append(answers, n)
	}
	return skipUnanswered(answers), scanner.Err()
}

// skipUnanswered cuts the answers at the first invalid entry so the session
// reports the rest as unanswered instead of out of range.
func skipUnanswered(answers []int) []int {
	out := answers[:0]
	for _, a := range answers {
		if a == math.MinInt {
			break
		}
		out = append(out, a)
	}
	return out
}
