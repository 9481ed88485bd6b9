// Package cfnread reads CloudFormation stack outputs through the AWS CLI.
package cfnread

import (
	"context"
	"encoding/json"

	"github.com/basewarphq/bwtasks/cmd/internal/cmdexec"
	"github.com/cockroachdb/errors"
)

// OutputFunc runs a command and returns its stdout.
type OutputFunc func(ctx context.Context, dir, name string, args ...string) (string, error)

type describeStacksResponse struct {
	Stacks []struct {
		Outputs []struct {
			OutputKey   string `json:"OutputKey"`
			OutputValue string `json:"OutputValue"`
		} `json:"Outputs"`
	} `json:"Stacks"`
}

// StackOutputs returns the outputs of a deployed stack keyed by output key.
func StackOutputs(ctx context.Context, region, stackName string) (map[string]string, error) {
	return stackOutputs(ctx, cmdexec.Output, region, stackName)
}

func stackOutputs(ctx context.Context, output OutputFunc, region, stackName string) (map[string]string, error) {
	out, err := output(ctx, "/", "aws", "cloudformation", "describe-stacks",
		"--no-cli-pager",
		"--region", region,
		"--stack-name", stackName,
		"--output", "json",
	)
	if err != nil {
		return nil, errors.Wrapf(err, "describing stack %s in %s", stackName, region)
	}

	var resp describeStacksResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		return nil, errors.Wrapf(err, "parsing stack outputs for %s", stackName)
	}

	if len(resp.Stacks) == 0 {
		return nil, errors.Newf("stack %s not found in %s", stackName, region)
	}

	outputs := make(map[string]string, len(resp.Stacks[0].Outputs))
	for _, o := range resp.Stacks[0].Outputs {
		outputs[o.OutputKey] = o.OutputValue
	}
	return outputs, nil
}
