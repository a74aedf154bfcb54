package endpoint

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/mock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	grpcstatus "google.golang.org/grpc/status"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"github.com/datastax/bigtable-admin-apis/config"
	"github.com/datastax/bigtable-admin-apis/internal/testutil"
	"github.com/datastax/bigtable-admin-apis/log"
	"github.com/datastax/bigtable-admin-apis/rest"
)

const (
	instance  = "projects/p/instances/i"
	usersName = instance + "/tables/users"
)

var _ = Describe("AdminEndpoint", func() {
	var (
		server  *testutil.BufconnServer
		admin   *testutil.AdminServerMock
		tokens  chan string
		cfg     *AdminEndpointConfig
		handler http.Handler
		closeFn func() error
	)

	BeforeEach(func() {
		admin = testutil.NewAdminServerMock()
		tokens = make(chan string, 10)
		server = testutil.NewBufconnServer(admin, testutil.NewOperationsServerMock(),
			grpc.UnaryInterceptor(func(ctx context.Context, req interface{}, _ *grpc.UnaryServerInfo, h grpc.UnaryHandler) (interface{}, error) {
				md, _ := metadata.FromIncomingContext(ctx)
				for _, token := range md.Get("authorization") {
					tokens <- token
				}
				return h(ctx, req)
			}))
		cfg = NewEndpointConfigWithLogger(testutil.TestLogger(), testutil.Target).
			WithInstanceName(instance).
			WithSupportedOperations(config.TableCreate).
			WithDialOptions(server.DialOption())
	})

	JustBeforeEach(func() {
		endpoint, err := cfg.NewEndpoint()
		Expect(err).ToNot(HaveOccurred())
		closeFn = endpoint.Close

		graphqlRoutes, err := endpoint.RoutesSchemaManagementGraphQL("/graphql-schema")
		Expect(err).ToNot(HaveOccurred())
		router := rest.ApiRouter("/rest", endpoint.RoutesRest("/rest"))
		rest.AddRoutes(router, graphqlRoutes)
		handler = endpoint.Handler(router)
	})

	AfterEach(func() {
		Expect(closeFn()).To(Succeed())
		server.Stop()
	})

	serve := func(method, target, body string, header ...string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, target, nil)
		} else {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
		}
		for i := 0; i+1 < len(header); i += 2 {
			req.Header.Set(header[i], header[i+1])
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	Describe("RoutesRest()", func() {
		It("Should serve tables through the admin client", func() {
			admin.On("GetTable", testutil.ProtoEq(&adminpb.GetTableRequest{Name: usersName, View: adminpb.Table_SCHEMA_VIEW})).
				Return(&adminpb.Table{Name: usersName, Granularity: adminpb.Table_MILLIS}, nil)

			rec := serve(http.MethodGet, "/rest/v1/tables/users", "")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get(log.RequestIDHeader)).ToNot(BeEmpty())

			var table map[string]interface{}
			Expect(json.Unmarshal(rec.Body.Bytes(), &table)).To(Succeed())
			Expect(table).To(HaveKeyWithValue("name", usersName))
			Expect(table).To(HaveKeyWithValue("granularity", "MILLIS"))
		})

		It("Should map status codes to HTTP", func() {
			admin.On("GetTable", mock.Anything).Return(nil, grpcstatus.Error(codes.NotFound, "no such table"))

			rec := serve(http.MethodGet, "/rest/v1/tables/users", "")
			Expect(rec.Code).To(Equal(http.StatusNotFound))
			Expect(rec.Body.String()).To(ContainSubstring("no such table"))
		})
	})

	Describe("RoutesSchemaManagementGraphQL()", func() {
		It("Should create tables", func() {
			admin.On("CreateTable", mock.MatchedBy(func(req *adminpb.CreateTableRequest) bool {
				return req.Parent == instance && req.TableId == "users"
			})).Return(&adminpb.Table{Name: usersName}, nil)

			rec := serve(http.MethodPost, "/graphql-schema",
				`{"query":"mutation { createTable(tableId: \"users\") { id } }"}`)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"data":{"createTable":{"id":"users"}}}`))
		})

		It("Should not expose unsupported mutations", func() {
			rec := serve(http.MethodPost, "/graphql-schema", `{"query":"mutation { dropTable(id: \"users\") }"}`)
			Expect(rec.Body.String()).To(ContainSubstring("errors"))
			admin.AssertNotCalled(GinkgoT(), "DeleteTable", mock.Anything)
		})
	})

	Context("With user or role auth", func() {
		BeforeEach(func() {
			cfg.WithUseUserOrRoleAuth(true)
		})

		It("Should forward the bearer token", func() {
			admin.On("GenerateConsistencyToken", mock.Anything).
				Return(&adminpb.GenerateConsistencyTokenResponse{ConsistencyToken: "tok"}, nil)

			rec := serve(http.MethodPost, "/rest/v1/tables/users/consistency-token", "", "Authorization", "Bearer secret")
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(tokens).To(Receive(Equal("Bearer secret")))
		})
	})

	Context("With a flow limiter", func() {
		BeforeEach(func() {
			cfg.WithLimiter(LimiterConfig{Enable: true, TokenBucketFillRate: 1, TokenBucketBurstEventCapacity: 1})
		})

		It("Should reject requests once the bucket is empty", func() {
			admin.On("ListTables", mock.Anything).Return(&adminpb.ListTablesResponse{}, nil)

			Expect(serve(http.MethodGet, "/rest/v1/tables", "").Code).To(Equal(http.StatusOK))
			rec := serve(http.MethodGet, "/rest/v1/tables", "")
			Expect(rec.Code).To(Equal(http.StatusTooManyRequests))
			Expect(rec.Body.String()).To(MatchJSON(`{"description":"too many requests","code":429}`))
		})
	})
})

func TestEndpoint(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Endpoint test suite")
}
