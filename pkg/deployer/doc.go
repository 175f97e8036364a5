// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package deployer turns deployment items into files on disk and runs them
against the cluster.

# Pipeline

A run has two phases:

 1. Materialize asks every registered producer for its items, in registration
    order, and writes them under the output directory. Each item gets a
    three digit sequence number from the counter of its pool.
 2. Apply runs the generated scripts: the services pool first, then the
    microservices pool, each in sequence order.

The output directory is removed and recreated on every Materialize, so two
runs with the same producers produce identical trees.

# Layout

	outputs/
	  services_output/
	    resources/000__gateway-lb.yml
	    000__gateway-lb.sh
	    checksums.txt
	  deploy_output/
	    resources/000__postgres-secrets.yml
	    resources/nginx.conf
	    000__postgres-secrets.sh
	    001__nginx.sh
	    checksums.txt

# Failure handling

Every command yields a runner.Result. With PolicyContinue the run keeps going
and the failures are listed in the Report; PolicyAbort stops at the first
failure. An unknown item kind stops Materialize before anything else is
written for that item.

# Readiness

With the default readiness.SleepWaiter the fixed delay is appended to each
script as "sleep <n>". Any other waiter runs in process after the script
exits and the scripts carry no sleep line.

# Usage

	d := deployer.New(
	    deployer.WithNamespace("pumpwood"),
	    deployer.WithRunner(runner.NewExecRunner(runner.WithOutput(os.Stdout))),
	)
	d.Register(postgresProducer)
	d.Register(gatewayProducer)

	if _, err := d.Materialize(ctx); err != nil {
	    return err
	}
	report, err := d.Apply(ctx)
*/
package deployer
