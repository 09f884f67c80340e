// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package grammar

import (
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/tokenrules/tokrule/token"
)

// ProcessBatch runs g over each of batches concurrently, bounded to at most
// parallelism runs in flight at once (parallelism <= 0 defaults to
// GOMAXPROCS). Each run gets its own cloned [rule.Context] (see
// [rule.Context.Clone]), so captures made while processing one batch entry
// are never visible while processing another.
//
// Results are returned in the same order as batches. The only error this
// returns is ctx.Err(), should ctx be cancelled before every batch entry
// finishes.
func ProcessBatch(ctx context.Context, g *Grammar, batches [][]token.Token, parallelism int) ([][]token.Token, error) {
	if parallelism <= 0 {
		parallelism = runtime.GOMAXPROCS(0)
	}

	sema := semaphore.NewWeighted(int64(parallelism))
	results := make([][]token.Token, len(batches))

	for i, tokens := range batches {
		if err := sema.Acquire(ctx, 1); err != nil {
			return nil, err
		}

		i, tokens := i, tokens
		go func() {
			defer sema.Release(1)
			runCtx := g.ctx.Clone()
			results[i] = processWithContext(g, runCtx, tokens)
		}()
	}

	// Acquiring the full weight blocks until every goroutine above has
	// called Release, i.e. until all batches have finished.
	if err := sema.Acquire(ctx, int64(parallelism)); err != nil {
		return nil, err
	}

	return results, nil
}
