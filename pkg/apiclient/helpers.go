package apiclient

import "context"

// Typed wrappers over Execute. Resource files use these so each method is a
// single line naming the resource and operation.

func findAll[T any](ctx context.Context, c *Client, res Resource, params Params) ([]T, error) {
	var results []T
	if _, err := c.Execute(ctx, res, OpFind, params, nil, &results); err != nil {
		return nil, err
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// findOne returns nil, nil when the operation absorbed a 404.
func findOne[T any](ctx context.Context, c *Client, res Resource, params Params) (*T, error) {
	var result T
	out, err := c.Execute(ctx, res, OpFindOne, params, nil, &result)
	if err != nil {
		return nil, err
	}
	if out.Absent {
		return nil, nil
	}
	return &result, nil
}

// create returns the id extracted by the operation's Location rule, or ""
// when the operation declares none.
func create(ctx context.Context, c *Client, res Resource, params Params, body any) (string, error) {
	out, err := c.Execute(ctx, res, OpCreate, params, body, nil)
	if err != nil {
		return "", err
	}
	for _, id := range out.ResourceID {
		return id, nil
	}
	return "", nil
}

func update(ctx context.Context, c *Client, res Resource, params Params, body any) error {
	_, err := c.Execute(ctx, res, OpUpdate, params, body, nil)
	return err
}

func remove(ctx context.Context, c *Client, res Resource, params Params) error {
	_, err := c.Execute(ctx, res, OpDelete, params, nil, nil)
	return err
}
