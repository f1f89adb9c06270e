package service

import (
	"context"

	"github.com/rs/zerolog/log"

	a "techstore-backend/internal/domains/address"
	"techstore-backend/internal/domains/address/model"
	"techstore-backend/internal/domains/user"
	userModel "techstore-backend/internal/domains/user/model"
	"techstore-backend/internal/shared"
)

type addressService struct {
	newID model.IDFunc
}

func NewAddressService(newID model.IDFunc) ServiceInterface {
	if newID == nil {
		newID = model.NewAddressID
	}
	return &addressService{
		newID: newID,
	}
}

// List retrieves all addresses for a user
func (s *addressService) List(ctx context.Context, owner user.Owner) []model.Address {
	current := owner.CurrentUser()
	if current == nil {
		return []model.Address{}
	}
	return model.Clone(current.Addresses)
}

// GetDefault retrieves default address for a user
func (s *addressService) GetDefault(ctx context.Context, owner user.Owner) (*model.Address, error) {
	current := owner.CurrentUser()
	if current == nil {
		return nil, a.NewUserHasNoAddress()
	}
	addr, ok := model.DefaultOf(current.Addresses)
	if !ok {
		return nil, a.NewUserHasNoAddress()
	}
	return &addr, nil
}

// AddOrUpdate validates the form and commits the new address set in one replacement
func (s *addressService) AddOrUpdate(ctx context.Context, owner user.Owner, form model.AddressForm, editingID string) (*MutationResult, error) {
	var result MutationResult

	_, err := owner.Apply(func(current *userModel.User) (*userModel.User, error) {
		next, changed, err := model.AddOrUpdate(current.Addresses, form, editingID, s.newID)
		if err != nil {
			return nil, err
		}

		result = MutationResult{Addresses: next, Changed: changed}
		if !changed {
			return nil, nil
		}

		idx := len(next) - 1
		if editingID != "" {
			idx = model.IndexOf(next, editingID)
		}
		saved := next[idx]
		result.Address = &saved

		return current.WithAddresses(next), nil
	})
	if err != nil {
		return nil, s.wrap(err)
	}

	log.Debug().
		Str("editing_id", editingID).
		Bool("changed", result.Changed).
		Int("count", len(result.Addresses)).
		Msg("Address saved")

	return &result, nil
}

// Remove deletes an address; policy quyết định có cho xoá default hay không
func (s *addressService) Remove(ctx context.Context, owner user.Owner, id string, policy RemovePolicy) (*MutationResult, error) {
	var result MutationResult

	_, err := owner.Apply(func(current *userModel.User) (*userModel.User, error) {
		idx := model.IndexOf(current.Addresses, id)
		if idx >= 0 && policy == KeepDefault &&
			current.Addresses[idx].IsDefault && len(current.Addresses) > 1 {
			return nil, a.NewCannotDeleteDefault(id)
		}

		next, changed := model.Remove(current.Addresses, id)
		result = MutationResult{Addresses: next, Changed: changed}
		if !changed {
			return nil, nil
		}
		return current.WithAddresses(next), nil
	})
	if err != nil {
		return nil, s.wrap(err)
	}

	return &result, nil
}

// SetDefault sets an address as default for user
func (s *addressService) SetDefault(ctx context.Context, owner user.Owner, id string) (*MutationResult, error) {
	var result MutationResult

	_, err := owner.Apply(func(current *userModel.User) (*userModel.User, error) {
		next, changed := model.SetDefault(current.Addresses, id)
		result = MutationResult{Addresses: next, Changed: changed}
		if idx := model.IndexOf(next, id); idx >= 0 {
			target := next[idx]
			result.Address = &target
		}
		if !changed {
			return nil, nil
		}
		return current.WithAddresses(next), nil
	})
	if err != nil {
		return nil, s.wrap(err)
	}

	return &result, nil
}

// Helper: validation và domain error trả nguyên, còn lại bọc thành SAVE_ADDRESS_ERROR
func (s *addressService) wrap(err error) error {
	if shared.IsValidationError(err) || a.IsDomainError(err) {
		return err
	}
	return a.NewSaveAddressError(err)
}
