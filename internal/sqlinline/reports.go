package sqlinline

const QCampaignStatusCounts = `--sql 792d8b2b-7463-40c9-94d2-c6a814b8da5f
select status, count(*)
from campaigns
group by status;
`

const QDonationStatusCounts = `--sql 90ee2234-672e-4945-8489-8dad78412ff4
select status, count(*)
from donations
group by status;
`

const QTotalsRaised = `--sql fef4e9a0-915e-4a95-98b1-19db21fb29ed
select coalesce(sum(amount), 0)::text,
       count(distinct donor_id) filter (where donor_id is not null)
from donations
where status = 'verified';
`

const QMonthlyTotals = `--sql 5dfa9bed-7020-40a2-a2d7-b9a5cc6f740b
select to_char(created_at, 'YYYY-MM') as month, count(*), coalesce(sum(amount), 0)::text
from donations
where status = 'verified'
group by to_char(created_at, 'YYYY-MM')
order by month desc
limit $1::int;
`

const QTopCampaigns = `--sql 6c662091-a395-4ddc-9daa-e76a8a003755
select c.id, c.name, count(d.id), coalesce(sum(d.amount), 0)::text, c.target_amount::text
from campaigns c
left join donations d on d.campaign_id = c.id and d.status = 'verified'
group by c.id
order by coalesce(sum(d.amount), 0) desc
limit $1::int;
`

const QTopDonors = `--sql 8d6e0f5a-42cf-4a64-9f0e-6b3f4f6d2c19
select d.donor_id, count(*), sum(d.amount)::text
from donations d
where d.status = 'verified' and d.donor_id is not null
group by d.donor_id
order by sum(d.amount) desc
limit $1::int;
`

const QBrowseActiveCampaigns = `--sql 3f1c7a26-95d4-4b1b-8a02-7cf6de20b9ad
select c.id, c.name, c.description, c.target_amount::text, c.current_amount::text,
       c.start_date, c.end_date, c.category, c.status, c.banner_path, c.created_by,
       c.approved_by, c.approved_at, c.rejection_reason, c.created_at, c.updated_at,
       coalesce(sum(d.amount) filter (where d.status = 'verified'), 0)::text,
       count(distinct d.id)
from campaigns c
left join donations d on d.campaign_id = c.id
where c.status = 'active'
  and ($1::text = '' or c.name ilike '%' || $1 || '%' or c.description ilike '%' || $1 || '%')
  and ($2::text = '' or c.category = $2)
group by c.id
order by c.created_at desc;
`
