package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"google.golang.org/genai"

	"github.com/okian/talentgrid/internal/domain/consult"
	"github.com/okian/talentgrid/internal/domain/model"
	"github.com/okian/talentgrid/pkg/logger"
)

func init() {
	_ = logger.Init()
}

type fakeModels struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig

	resp *genai.GenerateContentResponse
	err  error
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, cfg
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestNew(t *testing.T) {
	Convey("Creating a client without an API key fails", t, func() {
		_, err := New(context.Background(), "  ")
		So(errors.Is(err, ErrMissingAPIKey), ShouldBeTrue)
	})
}

func TestClient_Consult(t *testing.T) {
	Convey("Given a client over a fake model service", t, func() {
		fake := &fakeModels{resp: textResponse(" Start stay interviews. ", "", "Review pay.")}
		c := newClient(fake, WithModel("gemini-test"))

		pc := consult.PromptContext{
			Question: "Who is leaving?",
			Mode:     consult.ModeRetention,
			Summary:  &model.AggregateSummary{Total: 3, Scope: model.Scope{Organization: "acme"}},
			History: []consult.Message{
				{Role: consult.RoleUser, Content: "hi"},
				{Role: consult.RoleAssistant, Content: "hello"},
			},
		}

		Convey("When the model answers", func() {
			text, err := c.Consult(context.Background(), pc)

			Convey("Then the parts are joined and the request carries history and context", func() {
				So(err, ShouldBeNil)
				So(text, ShouldEqual, "Start stay interviews.\nReview pay.")
				So(fake.model, ShouldEqual, "gemini-test")
				So(fake.contents, ShouldHaveLength, 3)
				So(fake.contents[1].Role, ShouldEqual, "model")
				So(fake.contents[2].Parts[0].Text, ShouldEqual, "Who is leaving?")
				So(fake.config.SystemInstruction.Parts[0].Text, ShouldContainSubstring, "--- HR CONTEXT ---")
				So(fake.config.MaxOutputTokens, ShouldEqual, defaultMaxOutputTokens)
			})
		})

		Convey("When the model returns nothing", func() {
			fake.resp = textResponse("   ")
			_, err := c.Consult(context.Background(), pc)

			var cu *consult.ConsultationUnavailableError
			So(errors.As(err, &cu), ShouldBeTrue)
			So(cu.Reason, ShouldEqual, consult.ReasonEmpty)
		})

		Convey("When the API rate limits", func() {
			fake.resp = nil
			fake.err = genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}
			_, err := c.Consult(context.Background(), pc)

			var cu *consult.ConsultationUnavailableError
			So(errors.As(err, &cu), ShouldBeTrue)
			So(cu.Reason, ShouldEqual, consult.ReasonRateLimited)
		})

		Convey("When the question is blank", func() {
			pc.Question = " "
			_, err := c.Consult(context.Background(), pc)
			So(errors.Is(err, consult.ErrConsultationUnavailable), ShouldBeTrue)
		})
	})
}
