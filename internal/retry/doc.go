// Package retry repeats file operations that fail because another process
// holds the file, typically Automation Studio, an editor or a virus scanner
// on Windows.
//
//	executor := retry.NewExecutor(retry.NewFileLockClassifier(), retry.NewExponentialBackoff(3))
//	err := executor.Execute(ctx, func(ctx context.Context) error {
//	    return os.WriteFile(path, data, 0644)
//	})
package retry
