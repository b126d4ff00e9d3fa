package rest_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-nft-registry/internal/api/middleware"
	"github.com/feral-file/ff-nft-registry/internal/api/rest"
	"github.com/feral-file/ff-nft-registry/internal/contract"
	"github.com/feral-file/ff-nft-registry/internal/domain"
	"github.com/feral-file/ff-nft-registry/internal/logger"
	"github.com/feral-file/ff-nft-registry/internal/mocks"
	"github.com/feral-file/ff-nft-registry/internal/types"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

const testAPIKey = "test-api-key"

var (
	alice = domain.MustParseAccountID("alice.near")
	bob   = domain.MustParseAccountID("bob.near")
)

type testHandler struct {
	ctrl     *gomock.Controller
	registry *mocks.MockRegistry
	router   *gin.Engine
}

func setupTestHandler(t *testing.T) *testHandler {
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockRegistry(ctrl)

	router := gin.New()
	rest.SetupRoutes(router, rest.NewHandler(registry), middleware.AuthConfig{APIKeys: []string{testAPIKey}})

	return &testHandler{ctrl: ctrl, registry: registry, router: router}
}

// do sends a request. A non-empty caller authenticates with the test API key on its behalf.
func (h *testHandler) do(method, path, body string, caller domain.AccountID) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set("Authorization", "ApiKey "+testAPIKey)
		req.Header.Set(middleware.ACCOUNT_ID_HEADER, caller.String())
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Code
}

func TestHealthCheck(t *testing.T) {
	h := setupTestHandler(t)
	defer h.ctrl.Finish()

	w := h.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"ff-nft-registry"}`, w.Body.String())
}

func TestNftMint(t *testing.T) {
	body := `{"receiver_id":"bob.near","metadata":{"title":"Sunrise","media":"ipfs://bafy"},"attached_deposit":"1000"}`

	t.Run("success", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftMint(gomock.Any(),
				contract.Call{Signer: alice, AttachedDeposit: domain.NewBalance(1000)},
				bob,
				domain.TokenMetadata{Title: types.StringPtr("Sunrise"), Media: types.StringPtr("ipfs://bafy")}).
			Return(&contract.MintResult{TokenID: "4", Refund: domain.NewBalance(250), DeltaBytes: 750}, nil)

		w := h.do(http.MethodPost, "/api/v1/nft/mint", body, alice)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"token_id":"4","refund":"250"}`, w.Body.String())
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		w := h.do(http.MethodPost, "/api/v1/nft/mint", body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing metadata", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		w := h.do(http.MethodPost, "/api/v1/nft/mint", `{"receiver_id":"bob.near"}`, alice)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "validation_failed", decodeError(t, w))
	})

	t.Run("invalid receiver", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		w := h.do(http.MethodPost, "/api/v1/nft/mint", `{"receiver_id":"Bob Smith","metadata":{}}`, alice)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("insufficient deposit", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftMint(gomock.Any(), gomock.Any(), bob, gomock.Any()).
			Return(nil, fmt.Errorf("%w: must attach 750", domain.ErrInsufficientDeposit))

		w := h.do(http.MethodPost, "/api/v1/nft/mint", body, alice)
		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Equal(t, "payment_required", decodeError(t, w))
	})

	t.Run("conflict", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftMint(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, domain.ErrTokenAlreadyExists)

		w := h.do(http.MethodPost, "/api/v1/nft/mint", body, alice)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMint(t *testing.T) {
	h := setupTestHandler(t)
	defer h.ctrl.Finish()

	h.registry.EXPECT().
		Mint(gomock.Any(), contract.Call{Signer: alice, AttachedDeposit: domain.NewBalance(5000)}, alice).
		Return(&contract.MintResult{TokenID: "0", Message: domain.MSG_TOKEN_MINTED, Refund: domain.NewBalance(0)}, nil)

	w := h.do(http.MethodPost, "/api/v1/mint", `{"receiver_id":"alice.near","attached_deposit":"5000"}`, alice)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"token_id":"0","message":"token minted successfully","refund":"0"}`, w.Body.String())
}

func TestUpdateMetadata(t *testing.T) {
	body := `{"metadata":{"title":"Renamed"}}`

	t.Run("owner", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftUpdate(gomock.Any(), contract.Call{Signer: alice}, domain.TokenID("0"),
				domain.TokenMetadata{Title: types.StringPtr("Renamed")}).
			Return(&contract.UpdateResult{Message: domain.MSG_NFT_UPDATED}, nil)

		w := h.do(http.MethodPut, "/api/v1/tokens/0/metadata", body, alice)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"NFT updated","refund":"0"}`, w.Body.String())
	})

	t.Run("not owner", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftUpdate(gomock.Any(), contract.Call{Signer: bob}, domain.TokenID("0"), gomock.Any()).
			Return(nil, domain.ErrUnauthorized)

		w := h.do(http.MethodPut, "/api/v1/tokens/0/metadata", body, bob)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "forbidden", decodeError(t, w))
	})

	t.Run("invalid token id", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		w := h.do(http.MethodPut, "/api/v1/tokens/abc/metadata", body, alice)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing metadata", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		w := h.do(http.MethodPut, "/api/v1/tokens/0/metadata", `{}`, alice)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestGetToken(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftToken(gomock.Any(), domain.TokenID("3")).
			Return(&domain.TokenView{
				TokenID:            "3",
				OwnerID:            alice,
				Metadata:           domain.TokenMetadata{Title: types.StringPtr("Sunrise")},
				ApprovedAccountIDs: map[domain.AccountID]uint64{},
				Royalty:            map[domain.AccountID]uint32{},
			}, nil)

		w := h.do(http.MethodGet, "/api/v1/tokens/3", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"token_id":"3","owner_id":"alice.near","metadata":{"title":"Sunrise"},"approved_account_ids":{},"royalty":{}}`,
			w.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftToken(gomock.Any(), domain.TokenID("99")).
			Return(nil, fmt.Errorf("%w: 99", domain.ErrTokenNotFound))

		w := h.do(http.MethodGet, "/api/v1/tokens/99", "", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftToken(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("leveldb: closed"))

		w := h.do(http.MethodGet, "/api/v1/tokens/1", "", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "leveldb")
	})
}

func TestListTokens(t *testing.T) {
	h := setupTestHandler(t)
	defer h.ctrl.Finish()

	h.registry.EXPECT().
		NftTokens(gomock.Any(), contract.Page{FromIndex: 2, Limit: 100}).
		Return([]domain.TokenView{{TokenID: "2", OwnerID: alice}}, nil)
	h.registry.EXPECT().NftTotalSupply(gomock.Any()).Return(uint64(3), nil)

	w := h.do(http.MethodGet, "/api/v1/tokens?from_index=2&limit=500", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp rest.TokenListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint64(2), resp.FromIndex)
	assert.Equal(t, uint64(100), resp.Limit)
	assert.Equal(t, uint64(3), resp.Total)
	require.Len(t, resp.Tokens, 1)
	assert.Equal(t, domain.TokenID("2"), resp.Tokens[0].TokenID)
}

func TestListTokens_InvalidQuery(t *testing.T) {
	h := setupTestHandler(t)
	defer h.ctrl.Finish()

	w := h.do(http.MethodGet, "/api/v1/tokens?limit=-1", "", "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListOwnerTokens(t *testing.T) {
	t.Run("default page", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().
			NftTokensForOwner(gomock.Any(), bob, contract.Page{FromIndex: 0, Limit: 50}).
			Return([]domain.TokenView{}, nil)
		h.registry.EXPECT().NftSupplyForOwner(gomock.Any(), bob).Return(uint64(0), nil)

		w := h.do(http.MethodGet, "/api/v1/owners/bob.near/tokens", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"owner_id":"bob.near","tokens":[],"from_index":0,"limit":50,"supply":0}`, w.Body.String())
	})

	t.Run("invalid account", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		w := h.do(http.MethodGet, "/api/v1/owners/NOT_VALID/tokens", "", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetCollection(t *testing.T) {
	t.Run("initialized", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().NftMetadata(gomock.Any()).Return(&domain.CollectionMetadata{
			Spec:   domain.NFT_COLLECTION_SPEC,
			Name:   "Test Collection",
			Symbol: "TST",
		}, nil)
		h.registry.EXPECT().OwnerID(gomock.Any()).Return(domain.AccountID("registry.near"), nil)
		h.registry.EXPECT().NftTotalSupply(gomock.Any()).Return(uint64(12), nil)

		w := h.do(http.MethodGet, "/api/v1/collection", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t,
			`{"owner_id":"registry.near","metadata":{"spec":"nft-1.0.0","name":"Test Collection","symbol":"TST"},"total_supply":12}`,
			w.Body.String())
	})

	t.Run("not initialized", func(t *testing.T) {
		h := setupTestHandler(t)
		defer h.ctrl.Finish()

		h.registry.EXPECT().NftMetadata(gomock.Any()).Return(nil, domain.ErrNotInitialized)

		w := h.do(http.MethodGet, "/api/v1/collection", "", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
