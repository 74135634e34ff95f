package account

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"io/ioutil"
	"math/big"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/mr-tron/base58"

	"github.com/xuperchain/near-shell/common/log"
	"github.com/xuperchain/near-shell/crypto/keypair"
	"github.com/xuperchain/near-shell/keystore"
	"github.com/xuperchain/near-shell/rpc"
	"github.com/xuperchain/near-shell/transaction"
)

var testBlockHash = base58.Encode(make([]byte, 32))

type mockProvider struct {
	nonce   uint64
	failure json.RawMessage
	view    *rpc.CallResult
	sent    []*transaction.SignedTransaction
}

func (m *mockProvider) Status(ctx context.Context) (*rpc.NodeStatus, error) {
	return &rpc.NodeStatus{SyncInfo: rpc.SyncInfo{LatestBlockHash: testBlockHash}}, nil
}

func (m *mockProvider) ViewAccount(ctx context.Context, accountID string) (*rpc.AccountView, error) {
	return &rpc.AccountView{Amount: "1"}, nil
}

func (m *mockProvider) ViewAccessKeyList(ctx context.Context, accountID string) (*rpc.AccessKeyList, error) {
	return &rpc.AccessKeyList{}, nil
}

func (m *mockProvider) ViewAccessKey(ctx context.Context, accountID, publicKey string) (*rpc.AccessKeyView, error) {
	return &rpc.AccessKeyView{Nonce: m.nonce}, nil
}

func (m *mockProvider) CallFunction(ctx context.Context, contractID, method string, args []byte) (*rpc.CallResult, error) {
	return m.view, nil
}

func (m *mockProvider) SendTransaction(ctx context.Context, st *transaction.SignedTransaction) (*rpc.FinalExecutionOutcome, error) {
	m.sent = append(m.sent, st)
	return &rpc.FinalExecutionOutcome{Status: rpc.ExecutionStatus{Failure: m.failure}}, nil
}

func newTestAccount(t *testing.T, p *mockProvider, withKey bool) (*Account, *keypair.KeyPair) {
	t.Helper()
	ks := keystore.NewInMemoryKeyStore()
	kp, err := keypair.FromRandom()
	if err != nil {
		t.Fatal(err)
	}
	if withKey {
		ks.SetKey("default", "alice.test", kp)
	}
	conn := &Connection{
		NetworkID: "default",
		Provider:  p,
		Signer:    NewInMemorySigner(ks),
		Logger:    log.Discard(),
	}
	return New(conn, "alice.test"), kp
}

func TestAccountSendMoney(t *testing.T) {
	p := &mockProvider{nonce: 41}
	acc, kp := newTestAccount(t, p, true)

	if _, err := acc.SendMoney(context.Background(), "bob.test", big.NewInt(5)); err != nil {
		t.Fatalf("SendMoney() error = %v", err)
	}
	if len(p.sent) != 1 {
		t.Fatalf("sent %d transactions, want 1", len(p.sent))
	}
	tx := p.sent[0].Transaction
	if tx.Nonce != 42 || tx.SignerID != "alice.test" || tx.ReceiverID != "bob.test" {
		t.Errorf("tx = %+v", tx)
	}
	if tx.PublicKey != kp.PublicKey() {
		t.Error("tx must carry the signing key")
	}
	if !reflect.DeepEqual(tx.Actions, []transaction.Action{transaction.Transfer{Deposit: big.NewInt(5)}}) {
		t.Errorf("actions = %#v", tx.Actions)
	}
	body, _ := tx.Encode()
	digest := sha256.Sum256(body)
	if !kp.PublicKey().Verify(digest[:], p.sent[0].Signature) {
		t.Error("signature does not verify")
	}
}

func TestAccountNoKey(t *testing.T) {
	p := &mockProvider{}
	acc, _ := newTestAccount(t, p, false)
	_, err := acc.DeployContract(context.Background(), []byte{0})
	if !errors.Is(err, ErrNoKey) {
		t.Errorf("DeployContract() error = %v, want %v", err, ErrNoKey)
	}
	if len(p.sent) != 0 {
		t.Error("nothing may be sent without a key")
	}
}

func TestAccountTransactionFailure(t *testing.T) {
	p := &mockProvider{failure: json.RawMessage(`{"ActionError":{"index":0}}`)}
	acc, _ := newTestAccount(t, p, true)
	_, err := acc.DeleteAccount(context.Background(), "bob.test")
	if !errors.Is(err, rpc.ErrTransactionFailed) {
		t.Errorf("DeleteAccount() error = %v, want %v", err, rpc.ErrTransactionFailed)
	}
}

func TestAccountFunctionCallDefaultGas(t *testing.T) {
	p := &mockProvider{}
	acc, _ := newTestAccount(t, p, true)
	if _, err := acc.FunctionCall(context.Background(), "counter.test", "incr", []byte(`{}`), 0, nil); err != nil {
		t.Fatal(err)
	}
	call := p.sent[0].Transaction.Actions[0].(transaction.FunctionCall)
	if call.Gas != DefaultFunctionCallGas || call.MethodName != "incr" {
		t.Errorf("call = %+v", call)
	}
	if p.sent[0].Transaction.ReceiverID != "counter.test" {
		t.Errorf("receiver = %s", p.sent[0].Transaction.ReceiverID)
	}
}

func TestAccountViewFunction(t *testing.T) {
	tests := []struct {
		name   string
		result []int
		want   interface{}
	}{
		{name: "json", result: []int{'[', '1', ']'}, want: []interface{}{float64(1)}},
		{name: "text", result: []int{'h', 'i'}, want: "hi"},
		{name: "empty", result: nil, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockProvider{view: &rpc.CallResult{Result: tt.result, Logs: []string{"viewed"}}}
			acc, _ := newTestAccount(t, p, false)
			got, err := acc.ViewFunction(context.Background(), "counter.test", "get", nil)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ViewFunction() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestLocalCreator(t *testing.T) {
	p := &mockProvider{}
	master, _ := newTestAccount(t, p, true)
	newKey, _ := keypair.FromRandom()
	c := &LocalCreator{MasterAccount: master, InitialBalance: big.NewInt(10)}
	if err := c.CreateAccount(context.Background(), "new.alice.test", newKey.PublicKey()); err != nil {
		t.Fatal(err)
	}
	tx := p.sent[0].Transaction
	want := []transaction.Action{
		transaction.CreateAccount{},
		transaction.Transfer{Deposit: big.NewInt(10)},
		transaction.AddKey{PublicKey: newKey.PublicKey(), AccessKey: transaction.FullAccessKey()},
	}
	if tx.ReceiverID != "new.alice.test" || !reflect.DeepEqual(tx.Actions, want) {
		t.Errorf("tx = %+v", tx)
	}
}

func TestURLCreator(t *testing.T) {
	kp, _ := keypair.FromRandom()
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "created", status: http.StatusOK},
		{name: "rejected", status: http.StatusForbidden, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/account" || r.Method != http.MethodPost {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				body, _ := ioutil.ReadAll(r.Body)
				json.Unmarshal(body, &got)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := &URLCreator{HelperURL: srv.URL + "/"}
			err := c.CreateAccount(context.Background(), "new.test", kp.PublicKey())
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateAccount() error = %v, wantErr %v", err, tt.wantErr)
			}
			want := map[string]string{"newAccountId": "new.test", "newAccountPublicKey": kp.PublicKey().String()}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("request body = %v, want %v", got, want)
			}
		})
	}
}
