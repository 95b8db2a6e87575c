package cmd

import "testing"

func TestCutExecutesByDefault(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("dry-run")
	if f == nil {
		t.Fatal("dry-run flag not registered")
	}
	if f.DefValue != "false" {
		t.Errorf("dry-run default = %s, want false: a bare invocation must execute", f.DefValue)
	}

	if cutCmd.Flags().Lookup("execute") != nil {
		t.Error("execute flag present; dry-run is the only execution switch")
	}
}
