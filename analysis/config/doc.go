// Copyright The dg Authors.
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

/*
Package config loads and represents the configuration of the reaching-definitions engine.

Use [Load](filename) to load a configuration from a YAML file, or [NewDefault]() to get the
engine's built-in defaults. A config file may set any subset of the fields of [Options]; fields
it omits keep their default value. For example:

	max-set-size: 64
	strong-update-unknown-size: true
	log-level: 4

Use [NewLogGroup] to build a leveled logger from a loaded Config, for passing into the
analysis driver.
*/
package config
