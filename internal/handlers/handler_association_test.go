package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/apperrors"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/domain"
	portssvc "github.com/Shuja-Siddiqui/procure-accounting-backend/internal/core/ports/services"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/dto"
	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/middleware"
)

// --- Mock AssociationService ---
type MockAssociationService struct {
	mock.Mock
}

func (m *MockAssociationService) Associate(ctx context.Context, kind domain.JunctionKind, req dto.CreateJunctionRequest, userID string) error {
	args := m.Called(ctx, kind, req, userID)
	return args.Error(0)
}
func (m *MockAssociationService) AssociateBatch(ctx context.Context, kind domain.JunctionKind, req dto.BatchJunctionRequest, userID string) (*dto.BatchJunctionResponse, error) {
	args := m.Called(ctx, kind, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BatchJunctionResponse), args.Error(1)
}
func (m *MockAssociationService) Dissociate(ctx context.Context, kind domain.JunctionKind, req dto.CreateJunctionRequest, userID string) error {
	args := m.Called(ctx, kind, req, userID)
	return args.Error(0)
}
func (m *MockAssociationService) ListAssociations(ctx context.Context, kind domain.JunctionKind, leftID string) ([]domain.JunctionPair, error) {
	args := m.Called(ctx, kind, leftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JunctionPair), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.AssociationSvcFacade = (*MockAssociationService)(nil)

// --- Test Suite ---
type AssociationHandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockAssociationService *MockAssociationService
	jwtSecret              string
}

func (suite *AssociationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAssociationService = new(MockAssociationService)

	v1 := suite.router.Group("/api/v1")
	registerJunctionRoutes(v1, "/product-vendors", domain.ProductVendor, suite.mockAssociationService)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AssociationHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "procure-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AssociationHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AssociationHandlerTestSuite) TestAssociate_Success() {
	userID := uuid.NewString()
	req := dto.CreateJunctionRequest{LeftID: uuid.NewString(), RightID: uuid.NewString()}

	suite.mockAssociationService.On("Associate", mock.Anything, domain.ProductVendor, req, userID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/product-vendors", req, userID)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockAssociationService.AssertExpectations(suite.T())
}

func (suite *AssociationHandlerTestSuite) TestAssociate_ExistingPairIsSuccess() {
	userID := uuid.NewString()
	req := dto.CreateJunctionRequest{LeftID: uuid.NewString(), RightID: uuid.NewString()}

	suite.mockAssociationService.On("Associate", mock.Anything, domain.ProductVendor, req, userID).
		Return(apperrors.ErrDuplicateRelationship).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/product-vendors", req, userID)

	// Re-associating an existing pair is idempotent, never a conflict.
	suite.Equal(http.StatusCreated, w.Code)
	suite.Empty(w.Body.String())
	suite.mockAssociationService.AssertExpectations(suite.T())
}

func (suite *AssociationHandlerTestSuite) TestAssociate_UnknownEntity() {
	userID := uuid.NewString()
	req := dto.CreateJunctionRequest{LeftID: uuid.NewString(), RightID: uuid.NewString()}

	suite.mockAssociationService.On("Associate", mock.Anything, domain.ProductVendor, req, userID).
		Return(apperrors.ErrEntityNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/product-vendors", req, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAssociationService.AssertExpectations(suite.T())
}

func (suite *AssociationHandlerTestSuite) TestAssociateBatch_ReportsSkipped() {
	userID := uuid.NewString()
	req := dto.BatchJunctionRequest{LeftID: uuid.NewString(), RightIDs: []string{uuid.NewString(), uuid.NewString()}}
	result := &dto.BatchJunctionResponse{Requested: 2, Inserted: 1, Skipped: 1}

	suite.mockAssociationService.On("AssociateBatch", mock.Anything, domain.ProductVendor, req, userID).
		Return(result, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/product-vendors/batch", req, userID)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.BatchJunctionResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Inserted)
	suite.Equal(1, resp.Skipped)
	suite.mockAssociationService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAssociationHandler(t *testing.T) {
	suite.Run(t, new(AssociationHandlerTestSuite))
}
