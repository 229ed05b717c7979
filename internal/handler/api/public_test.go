//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"tourdesk/internal/handler/api"
	"tourdesk/internal/pkg/errs"
	"tourdesk/internal/usecase"
	commonhttp "tourdesk/tests/common/httptest"
	usecasemock "tourdesk/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type PublicHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockDocuments *usecasemock.MockDocumentUseCase
}

func (s *PublicHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDocuments = usecasemock.NewMockDocumentUseCase(s.mockCtrl)

	handler := api.NewPublicHandler(s.mockDocuments)
	public := s.router.Group("/public/booking")
	public.GET("/:token", handler.GetPage)
	public.GET("/:token/pdf", handler.GetPDF)
	public.GET("/:token/png", handler.GetPNG)
}

func (s *PublicHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestPublicHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PublicHandlerTestSuite))
}

func (s *PublicHandlerTestSuite) TestGetPage() {
	s.mockDocuments.EXPECT().
		FetchPage(gomock.Any(), "tok123").
		Return("<html>booking</html>", nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123", nil, "")

	s.Equal(http.StatusOK, w.Code)
	s.Equal("text/html; charset=utf-8", w.Header().Get("Content-Type"))
	s.Equal("<html>booking</html>", w.Body.String())
}

func (s *PublicHandlerTestSuite) TestGetPDF() {
	s.mockDocuments.EXPECT().
		FetchPDF(gomock.Any(), "tok123").
		Return(&usecase.Document{
			Data:      []byte("%PDF-1.7"),
			MediaType: "application/pdf",
			Filename:  "Quote_TD-2025-0401_1742032800_tok123.pdf",
		}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123/pdf", nil, "")

	s.Equal(http.StatusOK, w.Code)
	commonhttp.AssertHeaders(s.T(), w, map[string]string{
		"Content-Type":        "application/pdf",
		"Content-Disposition": `attachment; filename="Quote_TD-2025-0401_1742032800_tok123.pdf"`,
		"Cache-Control":       "private, max-age=300",
	})
	s.Equal("%PDF-1.7", w.Body.String())
}

func (s *PublicHandlerTestSuite) TestGetPNGWholeDocument() {
	s.mockDocuments.EXPECT().
		FetchPNG(gomock.Any(), usecase.PNGRequest{Token: "tok123"}).
		Return(&usecase.Document{
			Data:      []byte("\x89PNG"),
			MediaType: "image/png",
			Filename:  "Quote_TD-2025-0401_1742032800_tok123.png",
		}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123/png", nil, "")

	s.Equal(http.StatusOK, w.Code)
	s.Equal("image/png", w.Header().Get("Content-Type"))
}

func (s *PublicHandlerTestSuite) TestGetPNGSinglePageWithZoom() {
	page := 2
	s.mockDocuments.EXPECT().
		FetchPNG(gomock.Any(), usecase.PNGRequest{Token: "tok123", Page: &page, Zoom: 1.5}).
		Return(&usecase.Document{
			Data:      []byte("\x89PNG"),
			MediaType: "image/png",
			Filename:  "Quote_TD-2025-0401_1742032800_tok123.png",
		}, nil)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123/png?page=2&zoom=1.5", nil, "")

	s.Equal(http.StatusOK, w.Code)
}

func (s *PublicHandlerTestSuite) TestGetPNGRejectsNegativePage() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123/png?page=-1", nil, "")

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *PublicHandlerTestSuite) TestGetPNGRejectsOversizedZoom() {
	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123/png?zoom=9", nil, "")

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *PublicHandlerTestSuite) TestTokenFailuresAreUniform404() {
	for _, sentinel := range []error{
		errs.ErrTokenInvalid,
		errs.ErrBookingNotFound,
		errs.ErrNoDocument,
	} {
		s.mockDocuments.EXPECT().
			FetchPDF(gomock.Any(), "tok123").
			Return(nil, sentinel)

		w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123/pdf", nil, "")

		commonhttp.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Not found")
	}
}

func (s *PublicHandlerTestSuite) TestRenderTimeout() {
	s.mockDocuments.EXPECT().
		FetchPDF(gomock.Any(), "tok123").
		Return(nil, errs.ErrRenderTimeout)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123/pdf", nil, "")

	s.Equal(http.StatusGatewayTimeout, w.Code)
}

func (s *PublicHandlerTestSuite) TestRenderFailure() {
	s.mockDocuments.EXPECT().
		FetchPDF(gomock.Any(), "tok123").
		Return(nil, errs.ErrRenderFailed)

	w := commonhttp.PerformRequest(s.T(), s.router, http.MethodGet, "/public/booking/tok123/pdf", nil, "")

	s.Equal(http.StatusInternalServerError, w.Code)
}
