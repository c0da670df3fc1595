/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package catalog

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/gobuffalo/flect"
)

// activityTypes are the BPMN element names that become catalog steps.
var activityTypes = map[string]struct{}{
	"userTask":         {},
	"serviceTask":      {},
	"businessRuleTask": {},
	"scriptTask":       {},
	"sendTask":         {},
	"receiveTask":      {},
	"manualTask":       {},
	"callActivity":     {},
}

type bpmnDefinitions struct {
	Processes []bpmnProcess `xml:"process"`
}

type bpmnProcess struct {
	ID           string        `xml:"id,attr"`
	IsExecutable bool          `xml:"isExecutable,attr"`
	Elements     []bpmnElement `xml:",any"`
}

type bpmnElement struct {
	XMLName   xml.Name
	ID        string `xml:"id,attr"`
	Name      string `xml:"name,attr"`
	SourceRef string `xml:"sourceRef,attr"`
	TargetRef string `xml:"targetRef,attr"`
}

// ParseBPMN builds the step catalog of processID from a BPMN 2.0 document.
// Activities are ordered by a breadth first walk of the sequence flows from the start events.
// Activities the walk cannot reach are appended in document order.
// An empty processID selects the first executable process of the document.
func ParseBPMN(processID string, document string) (*StepCatalog, error) {
	var definitions bpmnDefinitions
	if err := xml.Unmarshal([]byte(document), &definitions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinition, err)
	}

	process, ok := selectProcess(definitions.Processes, processID)
	if !ok {
		return nil, fmt.Errorf("%w: process %q not found", ErrInvalidDefinition, processID)
	}

	activities := make(map[string]bpmnElement)
	var documentOrder []string
	outgoing := make(map[string][]string)
	var starts []string
	for _, element := range process.Elements {
		switch local := element.XMLName.Local; {
		case local == "sequenceFlow":
			if element.SourceRef != "" && element.TargetRef != "" {
				outgoing[element.SourceRef] = append(outgoing[element.SourceRef], element.TargetRef)
			}
		case local == "startEvent":
			starts = append(starts, element.ID)
		case isActivity(local) && element.ID != "":
			if _, dup := activities[element.ID]; !dup {
				activities[element.ID] = element
				documentOrder = append(documentOrder, element.ID)
			}
		}
	}
	if len(activities) == 0 {
		return nil, fmt.Errorf("%w: process %q has no activities", ErrInvalidDefinition, process.ID)
	}

	steps := make([]StepDefinition, 0, len(activities))
	placed := make(map[string]struct{}, len(activities))
	visited := make(map[string]struct{})
	queue := append([]string(nil), starts...)
	for _, start := range starts {
		visited[start] = struct{}{}
	}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if element, ok := activities[node]; ok {
			steps = append(steps, toStep(element))
			placed[node] = struct{}{}
		}
		for _, next := range outgoing[node] {
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			queue = append(queue, next)
		}
	}

	for _, id := range documentOrder {
		if _, ok := placed[id]; !ok {
			steps = append(steps, toStep(activities[id]))
		}
	}

	return NewStepCatalog(process.ID, steps), nil
}

func selectProcess(processes []bpmnProcess, processID string) (bpmnProcess, bool) {
	if processID != "" {
		for _, process := range processes {
			if process.ID == processID {
				return process, true
			}
		}
		return bpmnProcess{}, false
	}
	for _, process := range processes {
		if process.IsExecutable {
			return process, true
		}
	}
	if len(processes) > 0 {
		return processes[0], true
	}
	return bpmnProcess{}, false
}

func isActivity(local string) bool {
	_, ok := activityTypes[local]
	return ok
}

func toStep(element bpmnElement) StepDefinition {
	return StepDefinition{ID: element.ID, Name: displayName(element.ID, element.Name)}
}

// displayName falls back to a title cased form of the id when the model has no name.
func displayName(id, name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name != "" {
		return name
	}
	return flect.Titleize(id)
}
