package analyticsservice

import "context"

type FakeThrowLogSource struct {
	Calls         []string
	ThrowLogsFunc func(ctx context.Context, username string) ([]string, error)
}

func (f *FakeThrowLogSource) ThrowLogs(ctx context.Context, username string) ([]string, error) {
	f.Calls = append(f.Calls, username)
	if f.ThrowLogsFunc != nil {
		return f.ThrowLogsFunc(ctx, username)
	}
	return nil, nil
}

var _ ThrowLogSource = (*FakeThrowLogSource)(nil)
