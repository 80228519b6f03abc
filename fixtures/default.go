package fixtures

import (
	"time"

	"github.com/kilianp07/orsched/core/model"
	"github.com/kilianp07/orsched/core/schedule"
)

// DemoDay is the date of the builtin dataset.
var DemoDay = time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

func demoAt(h, m int) time.Time {
	return DemoDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

// Default returns the demo schedule: three surgeons, four rooms, four
// surgeries and their patients. Every call returns fresh slices.
func Default() schedule.Snapshot {
	return schedule.Snapshot{
		Surgeons: []model.Surgeon{
			{
				ID: "surgeon-1", Name: "Dr. Sarah Johnson", Specialty: "Cardiothoracic Surgery",
				AverageDurations: map[string]float64{"Coronary Bypass": 240, "Valve Replacement": 180, "Angioplasty": 90},
			},
			{
				ID: "surgeon-2", Name: "Dr. Michael Chen", Specialty: "Orthopedic Surgery",
				AverageDurations: map[string]float64{"Hip Replacement": 120, "Knee Replacement": 90, "Arthroscopy": 60},
			},
			{
				ID: "surgeon-3", Name: "Dr. Emily Rodriguez", Specialty: "Neurosurgery",
				AverageDurations: map[string]float64{"Brain Tumor Removal": 300, "Spinal Fusion": 180, "Craniotomy": 240},
			},
		},
		Rooms: []model.OperatingRoom{
			{ID: "or-1", Name: "OR 1 - Cardiac Suite", Equipment: []string{"Heart-Lung Machine", "Defibrillator", "Anesthesia Machine"}, Status: model.RoomOccupied},
			{ID: "or-2", Name: "OR 2 - General Surgery", Equipment: []string{"Laparoscopic Equipment", "Anesthesia Machine", "Electrocautery"}, Status: model.RoomAvailable},
			{ID: "or-3", Name: "OR 3 - Orthopedic Suite", Equipment: []string{"C-Arm", "Orthopedic Table", "Anesthesia Machine"}, Status: model.RoomSterilization},
			{ID: "or-4", Name: "OR 4 - Neurosurgery", Equipment: []string{"Microscope", "Neuromonitoring", "Anesthesia Machine"}, Status: model.RoomAvailable},
		},
		Surgeries: []model.Surgery{
			{ID: "surgery-1", PatientID: "patient-1", SurgeonID: "surgeon-1", RoomID: "or-1", Procedure: "Coronary Bypass",
				ScheduledStart: demoAt(8, 0), ScheduledEnd: demoAt(12, 0), Status: model.StatusInProgress, Priority: model.PriorityUrgent},
			{ID: "surgery-2", PatientID: "patient-2", SurgeonID: "surgeon-2", RoomID: "or-3", Procedure: "Hip Replacement",
				ScheduledStart: demoAt(9, 0), ScheduledEnd: demoAt(11, 0), Status: model.StatusScheduled, Priority: model.PriorityRoutine},
			{ID: "surgery-3", PatientID: "patient-3", SurgeonID: "surgeon-3", RoomID: "or-4", Procedure: "Brain Tumor Removal",
				ScheduledStart: demoAt(13, 0), ScheduledEnd: demoAt(18, 0), Status: model.StatusScheduled, Priority: model.PriorityUrgent},
			{ID: "surgery-4", PatientID: "patient-4", SurgeonID: "surgeon-1", RoomID: "or-2", Procedure: "Valve Replacement",
				ScheduledStart: demoAt(14, 0), ScheduledEnd: demoAt(17, 0), Status: model.StatusScheduled, Priority: model.PriorityRoutine},
		},
		Patients: []model.Patient{
			{ID: "patient-1", Name: "John Smith", Priority: model.PriorityUrgent, Procedure: "Coronary Bypass", EstimatedDuration: 240,
				RequiredEquipment: []string{"Heart-Lung Machine", "Defibrillator"}, SurgeonID: "surgeon-1"},
			{ID: "patient-2", Name: "Maria Garcia", Priority: model.PriorityRoutine, Procedure: "Hip Replacement", EstimatedDuration: 120,
				RequiredEquipment: []string{"C-Arm", "Orthopedic Table"}, SurgeonID: "surgeon-2"},
			{ID: "patient-3", Name: "David Wilson", Priority: model.PriorityUrgent, Procedure: "Brain Tumor Removal", EstimatedDuration: 300,
				RequiredEquipment: []string{"Microscope", "Neuromonitoring"}, SurgeonID: "surgeon-3"},
			{ID: "patient-4", Name: "Lisa Brown", Priority: model.PriorityRoutine, Procedure: "Valve Replacement", EstimatedDuration: 180,
				RequiredEquipment: []string{"Heart-Lung Machine"}, SurgeonID: "surgeon-1"},
		},
	}
}
