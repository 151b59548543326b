package console

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/marmos91/fedctl/pkg/apiclient"
)

var errBackend = errors.New("backend unavailable")

// fakeAPI is an in-memory admin API that counts every call.
type fakeAPI struct {
	mu    sync.Mutex
	realm string

	records []apiclient.OpenIDFederation
	nextID  int
	realmRep *apiclient.Realm
	idps     []apiclient.IdentityProvider

	listErr, getErr, createErr, updateErr, deleteErr error
	getRealmErr, updateRealmErr, createIdPErr        error

	calls map[string]int

	// renameTo, when set, renames the stored realm on the next update.
	renameTo string

	// listGate, when set, blocks ListOpenIDFederations until closed.
	listGate chan struct{}
}

func newFakeAPI(records ...apiclient.OpenIDFederation) *fakeAPI {
	return &fakeAPI{
		realm:    "master",
		records:  records,
		realmRep: &apiclient.Realm{Realm: "master"},
		calls:    map[string]int{},
	}
}

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) Realm() string { return f.realm }

func (f *fakeAPI) ListOpenIDFederations(ctx context.Context) ([]apiclient.OpenIDFederation, error) {
	f.count("list")
	if f.listGate != nil {
		select {
		case <-f.listGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return slices.Clone(f.records), nil
}

func (f *fakeAPI) GetOpenIDFederation(_ context.Context, id string) (*apiclient.OpenIDFederation, error) {
	f.count("get")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.records {
		if r.InternalID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAPI) CreateOpenIDFederation(_ context.Context, req apiclient.OpenIDFederationRequest) (string, error) {
	f.count("create")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return "", f.createErr
	}
	f.nextID++
	id := fmt.Sprintf("id-%d", f.nextID)
	f.records = append(f.records, apiclient.OpenIDFederation{
		InternalID:                       id,
		TrustAnchor:                      req.TrustAnchor,
		EntityTypes:                      req.EntityTypes,
		ClientRegistrationTypesSupported: req.ClientRegistrationTypesSupported,
	})
	return id, nil
}

func (f *fakeAPI) UpdateOpenIDFederation(_ context.Context, id string, req apiclient.OpenIDFederationRequest) error {
	f.count("update")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.records {
		if f.records[i].InternalID == id {
			f.records[i].TrustAnchor = req.TrustAnchor
			f.records[i].EntityTypes = req.EntityTypes
			f.records[i].ClientRegistrationTypesSupported = req.ClientRegistrationTypesSupported
			return nil
		}
	}
	return &apiclient.APIError{StatusCode: 404}
}

func (f *fakeAPI) DeleteOpenIDFederation(_ context.Context, id string) error {
	f.count("delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.records = slices.DeleteFunc(f.records, func(r apiclient.OpenIDFederation) bool { return r.InternalID == id })
	return nil
}

func (f *fakeAPI) GetRealm(context.Context) (*apiclient.Realm, error) {
	f.count("getRealm")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getRealmErr != nil {
		return nil, f.getRealmErr
	}
	if f.realmRep == nil {
		return nil, nil
	}
	return cloneRealm(f.realmRep), nil
}

func (f *fakeAPI) UpdateRealm(_ context.Context, r *apiclient.Realm) error {
	f.count("updateRealm")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateRealmErr != nil {
		return f.updateRealmErr
	}
	f.realmRep = cloneRealm(r)
	if f.renameTo != "" {
		f.realmRep.Realm = f.renameTo
	}
	return nil
}

func (f *fakeAPI) GetIdentityProvider(_ context.Context, alias string) (*apiclient.IdentityProvider, error) {
	f.count("getIdP")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, idp := range f.idps {
		if idp.Alias == alias {
			cp := idp
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeAPI) CreateIdentityProvider(_ context.Context, idp apiclient.IdentityProvider) (string, error) {
	f.count("createIdP")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createIdPErr != nil {
		return "", f.createIdPErr
	}
	f.idps = append(f.idps, idp)
	return idp.Alias, nil
}

func record(id, anchor string) apiclient.OpenIDFederation {
	return apiclient.OpenIDFederation{
		InternalID:                       id,
		TrustAnchor:                      anchor,
		EntityTypes:                      []string{apiclient.EntityTypeOpenIDProvider},
		ClientRegistrationTypesSupported: []string{apiclient.ClientRegistrationExplicit},
	}
}
