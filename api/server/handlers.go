// Package apiserver implements the thin HTTP orchestrators described in
// spec.md §4.9: matching incoming share submissions to pending
// validators, driving aggregation on quorum, and producing
// validators-manager signatures. The core logic (threshold recovery,
// signing roots, oracle resharing) lives in crypto/ and validators/; the
// handlers here only translate wire JSON to calls against those
// packages.
package apiserver

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	gethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/stakewise/dvt-relayer/api/server/structs"
	"github.com/stakewise/dvt-relayer/crypto/signing"
	"github.com/stakewise/dvt-relayer/service"
	"github.com/stakewise/dvt-relayer/validators"
)

// Handlers holds the service the HTTP surface orchestrates.
type Handlers struct {
	svc *service.Service
}

func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, structs.ErrorResponse{Message: err.Error()})
}

func decodeHexBytes(s string) ([]byte, error) {
	if len(s) >= 2 && s[0:2] == "0x" {
		s = s[2:]
	}
	return hex.DecodeString(s)
}

func hexOf(b []byte) string { return "0x" + hex.EncodeToString(b) }

// Register handles POST /register: assigns indexes to the next
// unregistered configured public keys and, if every listed validator
// already carries both signatures, returns the register manager
// signature.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req structs.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Amounts) == 0 {
		writeError(w, http.StatusBadRequest, errEmptyAmounts)
		return
	}
	vault := common.HexToAddress(req.Vault)
	vt := validatorTypeFromString(req.ValidatorType)

	ctx := r.Context()
	unregistered, err := h.svc.PublicKeysManager.Unregistered(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	n := len(req.Amounts)
	if n > len(unregistered) {
		n = len(unregistered)
	}

	now := time.Now().Unix()
	statuses := make([]structs.ValidatorStatus, 0, n)
	readyValidators := make([]*validators.Validator, 0, n)
	allReady := n > 0
	for i := 0; i < n; i++ {
		pubKey := unregistered[i]
		index := req.ValidatorsStartIndex + uint64(i)
		v := h.svc.Registry.GetOrCreate(pubKey, index, vault, req.Amounts[i], vt, now)
		statuses = append(statuses, structs.ValidatorStatus{PublicKey: pubKey, ValidatorIndex: v.ValidatorIndex})
		if v.IsSignaturesReady() {
			readyValidators = append(readyValidators, v)
		} else {
			allReady = false
		}
	}

	resp := structs.RegisterResponse{Validators: statuses}
	if allReady {
		sigHex, err := h.signRegister(ctx, vault, readyValidators)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.ValidatorsManagerSignature = &sigHex
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) signRegister(ctx context.Context, vault common.Address, ready []*validators.Validator) (string, error) {
	registryRoot, err := h.svc.Execution.ValidatorsRegistry().DepositRoot(ctx)
	if err != nil {
		return "", err
	}
	deposits := make([]signing.ValidatorDeposit, len(ready))
	for i, v := range ready {
		pk, err := decodeHexBytes(v.PublicKey)
		if err != nil {
			return "", err
		}
		wc := validators.WithdrawalCredentials(v.Vault, v.ValidatorType)
		root, err := signing.DepositDataRoot(pk, wc, v.DepositSignature, v.Amount)
		if err != nil {
			return "", err
		}
		deposits[i] = signing.ValidatorDeposit{
			PublicKey:             pk,
			Signature:             v.DepositSignature,
			WithdrawalCredentials: wc,
			Amount:                new(big.Int).SetUint64(v.Amount),
			DepositDataRoot:       root,
		}
	}
	hash, err := signing.RegisterMessageHash(h.svc.Network.ChainID, vault, registryRoot, deposits)
	if err != nil {
		return "", err
	}
	sig, err := gethcrypto.Sign(hash, h.svc.ValidatorsManagerKey)
	if err != nil {
		return "", err
	}
	return hexOf(sig), nil
}

// Fund handles POST /fund: funding uses zero-signature deposit data
// (no new BLS signature is required) and returns the fund manager
// signature over the current vault nonce.
func (h *Handlers) Fund(w http.ResponseWriter, r *http.Request) {
	var req structs.FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.PublicKeys) == 0 || len(req.PublicKeys) != len(req.Amounts) {
		writeError(w, http.StatusBadRequest, errMismatchedLists)
		return
	}
	vault := common.HexToAddress(req.Vault)
	ctx := r.Context()

	nonce, err := h.svc.Execution.Vault().Nonce(ctx, vault)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	emptySignature := make([]byte, 96)
	deposits := make([]signing.ValidatorDeposit, len(req.PublicKeys))
	for i, pubKeyHex := range req.PublicKeys {
		pk, err := decodeHexBytes(pubKeyHex)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		root, err := signing.DepositDataRoot(pk, nil, emptySignature, req.Amounts[i])
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		deposits[i] = signing.ValidatorDeposit{
			PublicKey:       pk,
			Signature:       emptySignature,
			Amount:          new(big.Int).SetUint64(req.Amounts[i]),
			DepositDataRoot: root,
		}
	}

	hash, err := signing.FundMessageHash(h.svc.Network.ChainID, vault, nonce, deposits)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sig, err := gethcrypto.Sign(hash, h.svc.ValidatorsManagerKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, structs.FundResponse{ValidatorsManagerSignature: hexOf(sig)})
}

// Withdraw handles POST /withdraw.
func (h *Handlers) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req structs.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.PublicKeys) == 0 || len(req.PublicKeys) != len(req.Amounts) {
		writeError(w, http.StatusBadRequest, errMismatchedLists)
		return
	}
	vault := common.HexToAddress(req.Vault)
	ctx := r.Context()

	nonce, err := h.svc.Execution.Vault().Nonce(ctx, vault)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	pubKeys := make([][]byte, len(req.PublicKeys))
	for i, s := range req.PublicKeys {
		b, err := decodeHexBytes(s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		pubKeys[i] = b
	}
	amounts := make([]*big.Int, len(req.Amounts))
	for i, a := range req.Amounts {
		amounts[i] = new(big.Int).SetUint64(a)
	}
	hash, err := signing.WithdrawMessageHash(h.svc.Network.ChainID, vault, nonce, pubKeys, amounts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sig, err := gethcrypto.Sign(hash, h.svc.ValidatorsManagerKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, structs.WithdrawResponse{ValidatorsManagerSignature: hexOf(sig)})
}

// Consolidate handles POST /consolidate.
func (h *Handlers) Consolidate(w http.ResponseWriter, r *http.Request) {
	var req structs.ConsolidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.SourcePublicKeys) == 0 || len(req.SourcePublicKeys) != len(req.TargetPublicKeys) {
		writeError(w, http.StatusBadRequest, errMismatchedConsolidateLists)
		return
	}
	vault := common.HexToAddress(req.Vault)
	ctx := r.Context()
	nonce, err := h.svc.Execution.Vault().Nonce(ctx, vault)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sources, err := decodeHexList(req.SourcePublicKeys)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	targets, err := decodeHexList(req.TargetPublicKeys)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	hash, err := signing.ConsolidateMessageHash(h.svc.Network.ChainID, vault, nonce, sources, targets)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	sig, err := gethcrypto.Sign(hash, h.svc.ValidatorsManagerKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, structs.ConsolidateResponse{ValidatorsManagerSignature: hexOf(sig)})
}

func decodeHexList(in []string) ([][]byte, error) {
	out := make([][]byte, len(in))
	for i, s := range in {
		b, err := decodeHexBytes(s)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// ExitSignature handles POST /exit-signature: applies §4.3/§4.5 to each
// share. Shares for unknown public keys are silently dropped
// (NotFoundError per §7); the response body is empty on success.
func (h *Handlers) ExitSignature(w http.ResponseWriter, r *http.Request) {
	var req structs.ExitSignatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(req.Shares) == 0 {
		writeError(w, http.StatusBadRequest, errEmptyShares)
		return
	}
	protoCfg := h.svc.ProtocolConfigCache.Current()
	for _, share := range req.Shares {
		depositSig, err := decodeHexBytes(share.DepositSignature)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		exitSig, err := decodeHexBytes(share.ExitSignature)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		threshold := h.svc.SignatureThreshold
		if threshold == 0 {
			threshold = protoCfg.Threshold()
		}
		if _, err := h.svc.Aggregator.SubmitDepositShare(share.PublicKey, req.ShareIndex, depositSig, threshold); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if _, err := h.svc.Aggregator.SubmitExitShare(share.PublicKey, req.ShareIndex, exitSig, protoCfg); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

// Exits handles GET /exits.
func (h *Handlers) Exits(w http.ResponseWriter, r *http.Request) {
	all := h.svc.Registry.All()
	entries := make([]structs.ExitEntry, 0, len(all))
	for _, v := range all {
		entries = append(entries, structs.ExitEntry{
			PublicKey:          v.PublicKey,
			ValidatorIndex:     v.ValidatorIndex,
			ValidatorType:      validatorTypeToString(v.ValidatorType),
			Amount:             v.Amount,
			Vault:              v.Vault.Hex(),
			IsSignaturesReady:  v.IsSignaturesReady(),
			ShareIndexesReady:  v.ShareIndexesReady(),
			CreatedAtTimestamp: v.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, entries)
}

func validatorTypeFromString(s string) validators.ValidatorType {
	if s == "V2" {
		return validators.V2
	}
	return validators.V1
}

func validatorTypeToString(vt validators.ValidatorType) string {
	if vt == validators.V2 {
		return "V2"
	}
	return "V1"
}
