package service

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rohingrover/absuma/internal/cache"
	"github.com/rohingrover/absuma/internal/models"
	"github.com/rohingrover/absuma/internal/repository"
)

func newClientService(repo *MockClientRepository, cacheClient cache.Client) ClientService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewClientService(repo, cacheClient, log)
}

func validClientInput() *ClientInput {
	return &ClientInput{
		ClientName: "Maersk India",
		ClientCode: "MSK-01",
	}
}

func TestCreateClient(t *testing.T) {
	repo := new(MockClientRepository)

	repo.On("FindByCode", mock.Anything, "MSK-01", uint(0)).Return(nil, repository.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Client")).Return(nil)

	svc := newClientService(repo, nil)
	client, err := svc.Create(context.Background(), validClientInput())

	require.NoError(t, err)
	require.Equal(t, models.ClientStatusActive, client.Status)
	repo.AssertExpectations(t)
}

func TestCreateClientDuplicateCode(t *testing.T) {
	repo := new(MockClientRepository)

	repo.On("FindByCode", mock.Anything, "MSK-01", uint(0)).
		Return(&models.Client{ClientName: "Maersk Line"}, nil)

	svc := newClientService(repo, nil)
	_, err := svc.Create(context.Background(), validClientInput())

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, "client code MSK-01 is already used by Maersk Line", conflict.Message)
}

func TestUpdateClientExcludesOwnRow(t *testing.T) {
	repo := new(MockClientRepository)

	existing := &models.Client{ClientName: "Maersk India", ClientCode: "MSK-01"}
	existing.ID = 4
	repo.On("FindByID", mock.Anything, uint(4)).Return(existing, nil)
	repo.On("FindByCode", mock.Anything, "MSK-01", uint(4)).Return(nil, repository.ErrNotFound)
	repo.On("Update", mock.Anything, existing).Return(nil)

	svc := newClientService(repo, nil)
	_, err := svc.Update(context.Background(), 4, validClientInput())

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestClientRatesCached(t *testing.T) {
	repo := new(MockClientRepository)
	cacheClient := new(MockCache)

	cacheClient.On("Get", mock.Anything, "client:rates:4").
		Return(`{"success":true,"client":{"client_name":"Maersk India"},"rates":[]}`, nil)

	svc := newClientService(repo, cacheClient)
	resp, err := svc.Rates(context.Background(), 4)

	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Equal(t, "Maersk India", resp.Client.ClientName)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestClientRatesCacheMiss(t *testing.T) {
	repo := new(MockClientRepository)
	cacheClient := new(MockCache)

	client := &models.Client{ClientName: "Maersk India", ClientCode: "MSK-01"}
	client.ID = 4
	cacheClient.On("Get", mock.Anything, "client:rates:4").Return("", cache.Nil)
	repo.On("FindByID", mock.Anything, uint(4)).Return(client, nil)
	repo.On("ListRates", mock.Anything, uint(4)).Return([]models.ClientRate{}, nil)
	cacheClient.On("Set", mock.Anything, "client:rates:4", mock.AnythingOfType("string"), ratesCacheTTL).Return(nil)

	svc := newClientService(repo, cacheClient)
	resp, err := svc.Rates(context.Background(), 4)

	require.NoError(t, err)
	require.True(t, resp.Success)
	cacheClient.AssertExpectations(t)
}

func TestAddRateInvalidatesCache(t *testing.T) {
	repo := new(MockClientRepository)
	cacheClient := new(MockCache)

	client := &models.Client{ClientName: "Maersk India"}
	client.ID = 4
	repo.On("FindByID", mock.Anything, uint(4)).Return(client, nil)
	repo.On("CreateRate", mock.Anything, mock.AnythingOfType("*models.ClientRate")).Return(nil)
	cacheClient.On("Delete", mock.Anything, []string{"client:rates:4"}).Return(nil)

	svc := newClientService(repo, cacheClient)
	rate, err := svc.AddRate(context.Background(), 4, &ClientRateInput{
		FromLocation: "Dadri",
		ToLocation:   "Mundra",
		Rate:         decimalPtr("48500"),
	})

	require.NoError(t, err)
	require.Equal(t, uint(4), rate.ClientID)
	cacheClient.AssertExpectations(t)
}

func TestAddRateRejectsNonPositive(t *testing.T) {
	svc := newClientService(new(MockClientRepository), nil)

	_, err := svc.AddRate(context.Background(), 4, &ClientRateInput{
		FromLocation: "Dadri",
		ToLocation:   "Mundra",
		Rate:         decimalPtr("0"),
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Errors, "rate must be greater than zero")
}

func TestDeleteClientCascades(t *testing.T) {
	repo := new(MockClientRepository)
	cacheClient := new(MockCache)

	repo.On("DeleteCascade", mock.Anything, uint(4)).Return(nil)
	cacheClient.On("Delete", mock.Anything, []string{"client:rates:4"}).Return(nil)

	svc := newClientService(repo, cacheClient)
	require.NoError(t, svc.Delete(context.Background(), 4))
	repo.AssertExpectations(t)
	cacheClient.AssertExpectations(t)
}

func TestAddContactRequiresName(t *testing.T) {
	svc := newClientService(new(MockClientRepository), nil)

	err := svc.AddContact(context.Background(), 4, &models.ClientContact{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}
