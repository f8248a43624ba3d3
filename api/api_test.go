package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	shelflogger "github.com/papercomputeco/shelf/pkg/logger"
	"github.com/papercomputeco/shelf/pkg/recommend"
	testutils "github.com/papercomputeco/shelf/pkg/utils/test"
)

func decode[T any](resp *http.Response) T {
	var out T
	body, err := io.ReadAll(resp.Body)
	Expect(err).NotTo(HaveOccurred())
	Expect(json.Unmarshal(body, &out)).To(Succeed())
	return out
}

func planRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/v1/plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

var _ = Describe("Server", func() {
	var server *Server

	BeforeEach(func() {
		rec, err := testutils.NewTestRecommender()
		Expect(err).NotTo(HaveOccurred())
		server, err = NewServer(Config{ListenAddr: ":0"}, rec, shelflogger.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("NewServer", func() {
		It("requires a recommender", func() {
			_, err := NewServer(Config{}, nil, shelflogger.Nop())
			Expect(err).To(MatchError(ContainSubstring("recommender is required")))
		})
	})

	Describe("GET /ping", func() {
		It("returns pong", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
			Expect(decode[string](resp)).To(Equal("pong"))
		})
	})

	Describe("GET /v1/items", func() {
		It("lists the corpus in index order", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/v1/items", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			items := decode[ItemsResponse](resp)
			Expect(items.Count).To(Equal(4))
			Expect(items.Items[1].ID).To(Equal("farmyard-tales.txt"))
			Expect(items.Items[1].Title).To(Equal("Farmyard Tales"))
		})
	})

	Describe("GET /v1/graph", func() {
		It("returns stats without edges by default", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/v1/graph", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			graph := decode[GraphResponse](resp)
			Expect(graph.Nodes).To(Equal(4))
			Expect(graph.Edges).To(Equal(2))
			Expect(graph.Components).To(Equal(2))
			Expect(graph.Isolated).To(HaveLen(1))
			Expect(graph.EdgeList).To(BeEmpty())
		})

		It("includes edges when asked", func() {
			resp, err := server.app.Test(httptest.NewRequest(http.MethodGet, "/v1/graph?edges=true", nil))
			Expect(err).NotTo(HaveOccurred())

			graph := decode[GraphResponse](resp)
			Expect(graph.EdgeList).To(HaveLen(2))
			Expect(graph.EdgeList[0].From.ID).To(Equal("little-red-hen.txt"))
			Expect(graph.EdgeList[0].To.ID).To(Equal("farmyard-tales.txt"))
		})
	})

	Describe("POST /v1/plan", func() {
		It("returns the reading plan", func() {
			resp, err := server.app.Test(planRequest(`{"read":["little-red-hen"],"want":"Deep Sea Voyage"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			rec := decode[recommend.Recommendation](resp)
			Expect(rec.From.ID).To(Equal("little-red-hen.txt"))
			Expect(rec.Want.ID).To(Equal("deep-sea-voyage.txt"))
			Expect(rec.Steps).To(HaveLen(3))
			Expect(rec.Distance).To(BeNumerically(">", 0))
		})

		It("returns 400 for a malformed body", func() {
			resp, err := server.app.Test(planRequest(`{"read":`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})

		It("returns 400 when want is missing", func() {
			resp, err := server.app.Test(planRequest(`{"read":["little-red-hen"]}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
			Expect(decode[ErrorResponse](resp).Error).To(Equal("want is required"))
		})

		It("returns 404 for an unknown item", func() {
			resp, err := server.app.Test(planRequest(`{"read":["moby-dick"],"want":"deep-sea-voyage"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusNotFound))
			Expect(decode[ErrorResponse](resp).Error).To(ContainSubstring("moby-dick"))
		})

		It("returns 422 when the wanted item is unreachable", func() {
			resp, err := server.app.Test(planRequest(`{"read":["little-red-hen"],"want":"lonely-lighthouse"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))
		})

		It("returns 422 when nothing has been read", func() {
			resp, err := server.app.Test(planRequest(`{"read":[],"want":"deep-sea-voyage"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusUnprocessableEntity))
		})
	})
})
